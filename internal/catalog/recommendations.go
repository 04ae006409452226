package catalog

import "github.com/dshills/rootcause/internal/schema"

func genericRecommendations() []string {
	return []string{
		"Implementar un sistema de gestión visual para monitorear indicadores clave",
		"Establecer reuniones diarias breves para mejorar la comunicación entre departamentos",
		"Desarrollar un programa de mejora continua con equipos multidisciplinarios",
	}
}

func keywordRecommendations() []KeywordRecommendations {
	return []KeywordRecommendations{
		{Keyword: "procedimientos", Recommendations: []string{
			"Desarrollar y documentar procedimientos operativos estándar (SOPs) para procesos críticos",
			"Implementar un sistema de gestión documental para mantener actualizados los procedimientos",
			"Realizar auditorías periódicas para verificar el cumplimiento de los procedimientos",
		}},
		{Keyword: "capacitación", Recommendations: []string{
			"Diseñar un programa de capacitación técnica específica para el personal",
			"Implementar un sistema de certificación de competencias para operadores",
			"Desarrollar materiales de formación visual y práctica para reforzar el aprendizaje",
		}},
		{Keyword: "comunicación", Recommendations: []string{
			"Implementar un sistema de comunicación estructurado entre departamentos",
			"Establecer roles y responsabilidades claras para la comunicación de problemas",
			"Desarrollar tableros de información compartida entre áreas relacionadas",
		}},
		{Keyword: "mantenimiento", Recommendations: []string{
			"Implementar un sistema de mantenimiento preventivo basado en condiciones",
			"Desarrollar un programa de mantenimiento autónomo por parte de los operadores",
			"Establecer indicadores de efectividad del mantenimiento (OEE)",
		}},
		{Keyword: "calidad", Recommendations: []string{
			"Implementar controles de calidad en puntos críticos del proceso",
			"Desarrollar sistemas a prueba de errores (Poka-Yoke)",
			"Establecer un programa de auditorías de calidad internas",
		}},
	}
}

func areaRecommendations() map[schema.Area][]string {
	return map[schema.Area][]string{
		schema.AreaProduction: {
			"Implementar metodología SMED para reducir tiempos de cambio",
			"Establecer un sistema de gestión de cuellos de botella",
			"Desarrollar un programa de TPM (Mantenimiento Productivo Total)",
		},
		schema.AreaQuality: {
			"Implementar control estadístico de procesos (SPC)",
			"Desarrollar un sistema de trazabilidad de productos",
			"Establecer un programa de calibración de equipos de medición",
		},
		schema.AreaLogistics: {
			"Implementar un sistema de gestión de inventario basado en demanda",
			"Optimizar rutas y flujos de materiales",
			"Desarrollar KPIs específicos para la cadena de suministro",
		},
		schema.AreaMaintenance: {
			"Implementar un sistema CMMS para gestión del mantenimiento",
			"Desarrollar un programa de análisis de fallas",
			"Establecer un inventario optimizado de repuestos críticos",
		},
		schema.AreaSafety: {
			"Implementar un programa de observación preventiva de seguridad",
			"Desarrollar análisis de riesgos por puesto de trabajo",
			"Establecer un sistema de reporte de incidentes y casi-accidentes",
		},
	}
}
