package pb

import (
	"encoding/json"
	"fmt"

	"tourneyhub/pkg/stats"

	"google.golang.org/protobuf/types/known/structpb"
)

// StatsToStruct encodes the stats value into a protobuf struct.
// The struct keeps the stored JSON field names.
func StatsToStruct(s *stats.APIStats) (*structpb.Struct, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("couldn't encode stats: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("couldn't encode stats: %w", err)
	}

	return structpb.NewStruct(fields)
}

// StructToStats decodes a protobuf struct back into the stats value.
func StructToStats(st *structpb.Struct) (*stats.APIStats, error) {
	if st == nil {
		return nil, fmt.Errorf("empty stats response")
	}

	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return nil, fmt.Errorf("couldn't decode stats: %w", err)
	}

	var result stats.APIStats
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("couldn't decode stats: %w", err)
	}

	return &result, nil
}
