package schema

import "time"

// Impact is the business impact selected when the problem is defined.
type Impact string

const (
	ImpactLow      Impact = "Bajo"
	ImpactMedium   Impact = "Medio"
	ImpactHigh     Impact = "Alto"
	ImpactCritical Impact = "Crítico"
)

// IsValidImpact reports whether i is one of the four impact levels.
func IsValidImpact(i Impact) bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh, ImpactCritical:
		return true
	}
	return false
}

// Area is the plant area the problem belongs to. It keys the area tables
// of the solution catalog.
type Area string

const (
	AreaProduction  Area = "Producción"
	AreaQuality     Area = "Calidad"
	AreaLogistics   Area = "Logística"
	AreaMaintenance Area = "Mantenimiento"
	AreaSafety      Area = "Seguridad"
	AreaOther       Area = "Otra"
)

// IsValidArea reports whether a is one of the selectable areas.
func IsValidArea(a Area) bool {
	switch a {
	case AreaProduction, AreaQuality, AreaLogistics, AreaMaintenance, AreaSafety, AreaOther:
		return true
	}
	return false
}

// Status tracks where a problem is in its analysis.
type Status string

const (
	StatusInAnalysis Status = "En análisis"
	StatusResolved   Status = "Resuelto"
)

// IsValidStatus reports whether s is a known status.
func IsValidStatus(s Status) bool {
	return s == StatusInAnalysis || s == StatusResolved
}

// Problem is the problem definition entered on the first wizard step.
type Problem struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Impact      Impact    `json:"impact" yaml:"impact"`
	Area        Area      `json:"area" yaml:"area"`
	Date        string    `json:"date" yaml:"date"` // YYYY-MM-DD
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
}

// Methodology tags one of the four analysis methods.
type Methodology string

const (
	MethodIshikawa Methodology = "ishikawa"
	MethodFiveWhys Methodology = "fiveWhys"
	MethodPareto   Methodology = "pareto"
	MethodFMEA     Methodology = "fmea"
)

// Methodologies lists the methods in report order.
var Methodologies = []Methodology{MethodIshikawa, MethodFiveWhys, MethodPareto, MethodFMEA}

// ParseMethodology returns the methodology for tag and whether it is known.
func ParseMethodology(tag string) (Methodology, bool) {
	for _, m := range Methodologies {
		if string(m) == tag {
			return m, true
		}
	}
	return "", false
}

// DisplayName is the Spanish name used in generated text.
func (m Methodology) DisplayName() string {
	switch m {
	case MethodIshikawa:
		return "Diagrama de Ishikawa (Causa-Efecto)"
	case MethodFiveWhys:
		return "Análisis de los 5 Por qué"
	case MethodPareto:
		return "Análisis de Pareto"
	case MethodFMEA:
		return "Análisis de Modos y Efectos de Falla (FMEA)"
	}
	return string(m)
}

// IshikawaCategory is one bone of the fishbone diagram.
type IshikawaCategory struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// IshikawaCause is a single cause written under a category.
type IshikawaCause struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// IshikawaData maps category ids to the causes listed under them.
type IshikawaData struct {
	Categories []IshikawaCategory       `json:"categories" yaml:"categories"`
	Causes     map[int][]IshikawaCause `json:"causes" yaml:"causes"`
}

// DefaultIshikawaCategories returns the six classic 6M categories.
func DefaultIshikawaCategories() []IshikawaCategory {
	return []IshikawaCategory{
		{ID: 1, Name: "Mano de obra"},
		{ID: 2, Name: "Métodos"},
		{ID: 3, Name: "Máquinas"},
		{ID: 4, Name: "Materiales"},
		{ID: 5, Name: "Medición"},
		{ID: 6, Name: "Medio ambiente"},
	}
}

// Why is one level of the Five-Whys chain.
type Why struct {
	ID       int    `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// MaxWhys is the depth at which the chain is considered complete.
const MaxWhys = 5

// FiveWhysData is the ordered why/answer chain.
type FiveWhysData struct {
	Whys []Why `json:"whys" yaml:"whys"`
}

// ParetoCause is a cause with its observed frequency.
type ParetoCause struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Frequency int    `json:"frequency" yaml:"frequency"`
}

// ParetoData holds the frequency table.
type ParetoData struct {
	Causes []ParetoCause `json:"causes" yaml:"causes"`
}

// FailureMode is one FMEA row. Severity, Occurrence and Detection are 1..10.
type FailureMode struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Process     string `json:"process" yaml:"process"`
	FailureMode string `json:"failureMode" yaml:"failureMode"`
	Effect      string `json:"effect" yaml:"effect"`
	Cause       string `json:"cause" yaml:"cause"`
	Severity    int    `json:"severity" yaml:"severity"`
	Occurrence  int    `json:"occurrence" yaml:"occurrence"`
	Detection   int    `json:"detection" yaml:"detection"`
	RPN         int    `json:"rpn" yaml:"rpn"`
	Actions     string `json:"actions" yaml:"actions"`
}

// ComputeRPN returns severity × occurrence × detection.
func (f FailureMode) ComputeRPN() int {
	return f.Severity * f.Occurrence * f.Detection
}

// FMEAData holds the failure mode table.
type FMEAData struct {
	FailureModes []FailureMode `json:"failureModes" yaml:"failureModes"`
}

// Record is a stored methodology payload. At most one live record exists per
// (methodology, problem id).
type Record[T any] struct {
	ID        string    `json:"id"`
	ProblemID string    `json:"problemId"`
	Data      T         `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConclusionRecord is the stored integrated conclusion for a problem.
type ConclusionRecord struct {
	ID         string    `json:"id"`
	ProblemID  string    `json:"problemId"`
	Conclusion string    `json:"conclusion"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Solution is a proposed corrective action.
type Solution struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Impact      string `json:"impact" yaml:"impact"`
	Effort      string `json:"effort" yaml:"effort"`
	Timeframe   string `json:"timeframe" yaml:"timeframe"`
	Responsible string `json:"responsible,omitempty" yaml:"responsible,omitempty"`
}

// SolutionSet is the stored list of solutions for a problem.
type SolutionSet struct {
	ID        string     `json:"id"`
	ProblemID string     `json:"problemId"`
	Solutions []Solution `json:"solutions"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ProblemData is everything stored for one problem. Absent pieces are nil;
// Solutions is never nil.
type ProblemData struct {
	Problem      *Problem      `json:"problem"`
	IshikawaData *IshikawaData `json:"ishikawaData"`
	FiveWhysData *FiveWhysData `json:"fiveWhysData"`
	ParetoData   *ParetoData   `json:"paretoData"`
	FMEAData     *FMEAData     `json:"fmeaData"`
	Conclusion   *string       `json:"conclusion"`
	Solutions    []Solution    `json:"solutions"`
}

// Case is the input to a full analysis run.
type Case struct {
	Problem  Problem       `json:"problem" yaml:"problem"`
	Ishikawa *IshikawaData `json:"ishikawa,omitempty" yaml:"ishikawa,omitempty"`
	FiveWhys *FiveWhysData `json:"fiveWhys,omitempty" yaml:"fiveWhys,omitempty"`
	Pareto   *ParetoData   `json:"pareto,omitempty" yaml:"pareto,omitempty"`
	FMEA     *FMEAData     `json:"fmea,omitempty" yaml:"fmea,omitempty"`
}

// CaseFromProblemData assembles a Case from stored data. It returns false when
// the problem itself is absent.
func CaseFromProblemData(pd ProblemData) (*Case, bool) {
	if pd.Problem == nil {
		return nil, false
	}
	return &Case{
		Problem:  *pd.Problem,
		Ishikawa: pd.IshikawaData,
		FiveWhys: pd.FiveWhysData,
		Pareto:   pd.ParetoData,
		FMEA:     pd.FMEAData,
	}, true
}
