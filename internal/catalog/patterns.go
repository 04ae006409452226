package catalog

import "github.com/dshills/rootcause/internal/schema"

// Root-cause taxonomy ids.
const (
	PatternProcedures    schema.PatternID = "PROCEDURES"
	PatternTraining      schema.PatternID = "TRAINING"
	PatternCommunication schema.PatternID = "COMMUNICATION"
	PatternMaintenance   schema.PatternID = "MAINTENANCE"
	PatternQuality       schema.PatternID = "QUALITY_CONTROL"
	PatternDesign        schema.PatternID = "DESIGN"
	PatternResources     schema.PatternID = "RESOURCES"
	PatternMonitoring    schema.PatternID = "MONITORING"
	PatternSupplyChain   schema.PatternID = "SUPPLY_CHAIN"
	PatternData          schema.PatternID = "DATA_ANALYSIS"
)

func patterns() []Pattern {
	return []Pattern{
		{ID: PatternProcedures, Text: "Falta de procedimientos estandarizados y documentación adecuada"},
		{ID: PatternTraining, Text: "Deficiencias en la capacitación y formación del personal"},
		{ID: PatternCommunication, Text: "Problemas de comunicación entre departamentos"},
		{ID: PatternMaintenance, Text: "Mantenimiento inadecuado o insuficiente de equipos"},
		{ID: PatternQuality, Text: "Falta de controles de calidad efectivos"},
		{ID: PatternDesign, Text: "Diseño deficiente de procesos o productos"},
		{ID: PatternResources, Text: "Gestión ineficiente de recursos"},
		{ID: PatternMonitoring, Text: "Falta de sistemas de monitoreo y alerta temprana"},
		{ID: PatternSupplyChain, Text: "Problemas en la cadena de suministro"},
		{ID: PatternData, Text: "Falta de análisis de datos para toma de decisiones"},
	}
}

func stopwords() []string {
	return []string{
		"el", "la", "los", "las", "un", "una", "unos", "unas", "y", "o", "a",
		"ante", "bajo", "con", "de", "desde", "en", "entre", "hacia", "hasta",
		"para", "por", "según", "sin", "sobre", "tras", "que", "es", "son",
		"está", "están", "ha", "han", "se", "del",
	}
}
