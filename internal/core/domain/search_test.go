package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFilter_IsEmpty(t *testing.T) {
	hasCode := false

	tests := []struct {
		name   string
		filter SearchFilter
		want   bool
	}{
		{name: "zero value", filter: SearchFilter{}, want: true},
		{name: "chunk type set", filter: SearchFilter{ChunkType: ChunkTypeCodeSnippet}, want: false},
		{name: "has code set to false still counts", filter: SearchFilter{HasCode: &hasCode}, want: false},
		{name: "code language set", filter: SearchFilter{CodeLanguage: "go"}, want: false},
		{name: "importance set", filter: SearchFilter{Importance: ImportanceHigh}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.IsEmpty())
		})
	}
}
