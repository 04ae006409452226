package validate

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/rootcause/internal/schema"
)

// DecodeMethodology decodes a JSON payload for methodology m, validates it
// and returns a pointer to the matching *Data type.
func DecodeMethodology(m schema.Methodology, raw []byte) (any, error) {
	switch m {
	case schema.MethodIshikawa:
		var d schema.IshikawaData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("ishikawa: %w", err)
		}
		if err := Ishikawa(&d); err != nil {
			return nil, err
		}
		return &d, nil
	case schema.MethodFiveWhys:
		var d schema.FiveWhysData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("fiveWhys: %w", err)
		}
		if err := FiveWhys(&d); err != nil {
			return nil, err
		}
		return &d, nil
	case schema.MethodPareto:
		var d schema.ParetoData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("pareto: %w", err)
		}
		if err := Pareto(&d); err != nil {
			return nil, err
		}
		return &d, nil
	case schema.MethodFMEA:
		var d schema.FMEAData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("fmea: %w", err)
		}
		if err := FMEA(&d); err != nil {
			return nil, err
		}
		return &d, nil
	}
	return nil, fmt.Errorf("unknown methodology %q", m)
}
