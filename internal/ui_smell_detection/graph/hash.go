package graph

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/minio/highwayhash"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

var key = []byte("duis-acg-fingerprint-key-32bytes")

// Hash returns the 64-bit highwayhash of data.
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// HashHex is Hash formatted as 16 hex digits.
func HashHex(data []byte) (string, error) {
	h, err := Hash(data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h), nil
}

// HashFields hashes the quoted fields joined by '|'.
func HashFields(fields ...string) string {
	var b []byte
	for i, f := range fields {
		if i > 0 {
			b = append(b, '|')
		}
		b = strconv.AppendQuote(b, f)
	}
	h, err := HashHex(b)
	if err != nil {
		return ""
	}
	return h
}

func hashGraph(nodes []*domain.ComponentNode, flows []domain.PropFlow) (string, error) {
	b, err := json.Marshal(struct {
		Nodes []*domain.ComponentNode `json:"nodes"`
		Flows []domain.PropFlow       `json:"flows"`
	}{nodes, flows})
	if err != nil {
		return "", fmt.Errorf("graph hash: %w", err)
	}
	return HashHex(b)
}
