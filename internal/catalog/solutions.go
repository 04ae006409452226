package catalog

import "github.com/dshills/rootcause/internal/schema"

func solution(title, description, impact, effort, timeframe string) schema.Solution {
	return schema.Solution{
		Title:       title,
		Description: description,
		Impact:      impact,
		Effort:      effort,
		Timeframe:   timeframe,
	}
}

func areaSolutions() map[schema.Area][]schema.Solution {
	return map[schema.Area][]schema.Solution{
		schema.AreaProduction: {
			solution("Implementar sistema de mantenimiento preventivo",
				"Desarrollar e implementar un sistema CMMS (Computerized Maintenance Management System) para programar y dar seguimiento al mantenimiento preventivo de equipos críticos.",
				"Alto", "Alto", "Medio plazo"),
			solution("Programa de capacitación técnica",
				"Diseñar un programa de capacitación técnica específica para operadores y personal de mantenimiento en áreas críticas identificadas.",
				"Alto", "Medio", "Corto plazo"),
			solution("Implementar metodología SMED",
				"Aplicar la metodología de cambio rápido de herramientas (SMED) para reducir tiempos de preparación y aumentar la flexibilidad de producción.",
				"Alto", "Medio", "Medio plazo"),
		},
		schema.AreaQuality: {
			solution("Implementar sistema de gestión de calidad",
				"Desarrollar e implementar un sistema de gestión de calidad basado en ISO 9001 con enfoque en control estadístico de procesos.",
				"Alto", "Alto", "Largo plazo"),
			solution("Implementar metodología Poka-Yoke",
				"Diseñar e implementar sistemas a prueba de errores (Poka-Yoke) en puntos críticos del proceso para prevenir defectos.",
				"Alto", "Medio", "Medio plazo"),
			solution("Sistema de trazabilidad de productos",
				"Implementar un sistema de trazabilidad que permita seguir el historial completo de cada producto a lo largo del proceso.",
				"Alto", "Alto", "Medio plazo"),
		},
		schema.AreaLogistics: {
			solution("Optimización de la cadena de suministro",
				"Realizar un análisis completo de la cadena de suministro e implementar mejoras en puntos críticos identificados.",
				"Alto", "Alto", "Medio plazo"),
			solution("Sistema de gestión de inventario",
				"Implementar un sistema de gestión de inventario basado en demanda real y pronósticos precisos.",
				"Alto", "Medio", "Medio plazo"),
			solution("Optimización de rutas y flujos",
				"Analizar y rediseñar las rutas de transporte y flujos de materiales para minimizar tiempos y costos.",
				"Medio", "Medio", "Corto plazo"),
		},
		schema.AreaMaintenance: {
			solution("Implementar mantenimiento predictivo",
				"Desarrollar un programa de mantenimiento predictivo utilizando análisis de datos y monitoreo de condiciones.",
				"Alto", "Alto", "Medio plazo"),
			solution("Programa de TPM",
				"Implementar un programa de Mantenimiento Productivo Total (TPM) involucrando a operadores en el mantenimiento básico.",
				"Alto", "Alto", "Largo plazo"),
			solution("Sistema de análisis de fallas",
				"Implementar un sistema estructurado para analizar las causas raíz de fallas recurrentes en equipos críticos.",
				"Alto", "Medio", "Corto plazo"),
		},
		schema.AreaSafety: {
			solution("Programa de observación preventiva",
				"Implementar un programa de observación preventiva de seguridad con participación de todos los niveles de la organización.",
				"Alto", "Medio", "Corto plazo"),
			solution("Análisis de riesgos por puesto",
				"Desarrollar un análisis detallado de riesgos para cada puesto de trabajo y establecer medidas preventivas específicas.",
				"Alto", "Medio", "Medio plazo"),
			solution("Sistema de gestión de seguridad",
				"Implementar un sistema de gestión de seguridad basado en ISO 45001 con indicadores proactivos y reactivos.",
				"Alto", "Alto", "Largo plazo"),
		},
	}
}

func keywordSolutions() []KeywordSolutions {
	return []KeywordSolutions{
		{Keyword: "procedimiento", Solutions: []schema.Solution{
			solution("Sistema de gestión documental",
				"Implementar un sistema para crear, revisar, aprobar y controlar documentos y procedimientos operativos.",
				"Alto", "Medio", "Medio plazo"),
		}},
		{Keyword: "capacitación", Solutions: []schema.Solution{
			solution("Programa de certificación de competencias",
				"Desarrollar un programa de certificación interna para validar las competencias técnicas del personal en procesos críticos.",
				"Alto", "Medio", "Medio plazo"),
		}},
		{Keyword: "comunicación", Solutions: []schema.Solution{
			solution("Sistema de comunicación estructurada",
				"Implementar un sistema de comunicación con roles, responsabilidades y canales claramente definidos para diferentes tipos de información.",
				"Medio", "Bajo", "Corto plazo"),
		}},
		{Keyword: "mantenimiento", Solutions: []schema.Solution{
			solution("Sistema CMMS",
				"Implementar un sistema computarizado de gestión de mantenimiento para planificar, ejecutar y dar seguimiento a todas las actividades de mantenimiento.",
				"Alto", "Alto", "Medio plazo"),
		}},
		{Keyword: "calidad", Solutions: []schema.Solution{
			solution("Control estadístico de procesos",
				"Implementar técnicas de control estadístico para monitorear la variabilidad de los procesos e identificar tendencias antes de que generen defectos.",
				"Alto", "Medio", "Medio plazo"),
		}},
	}
}

func generalSolutions() []schema.Solution {
	return []schema.Solution{
		solution("Estandarización de procedimientos operativos",
			"Desarrollar y documentar procedimientos operativos estándar (SOPs) para procesos críticos, incluyendo listas de verificación y ayudas visuales.",
			"Alto", "Medio", "Corto plazo"),
		solution("Mejorar canales de comunicación interdepartamental",
			"Implementar reuniones diarias breves (stand-up meetings) entre departamentos clave y establecer un sistema de comunicación para problemas urgentes.",
			"Medio", "Bajo", "Corto plazo"),
		solution("Sistema de gestión visual",
			"Implementar tableros de gestión visual en áreas clave para monitorear métricas de desempeño, estado de equipos y problemas pendientes.",
			"Medio", "Bajo", "Corto plazo"),
		solution("Programa de mejora continua",
			"Establecer un programa estructurado de mejora continua con equipos multidisciplinarios para identificar y resolver problemas.",
			"Alto", "Medio", "Medio plazo"),
		solution("Sistema de gestión del conocimiento",
			"Implementar un sistema para documentar y compartir conocimientos, lecciones aprendidas y mejores prácticas entre el personal.",
			"Medio", "Medio", "Medio plazo"),
	}
}
