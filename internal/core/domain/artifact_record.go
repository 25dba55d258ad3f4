package domain

import "time"

// ArtifactRecord is the ledger entry for one produced shared library.
// It lets a later run report whether an artifact was reproduced unchanged.
type ArtifactRecord struct {
	Variant   string    `json:"variant"`
	ABI       string    `json:"abi"`
	Library   string    `json:"library"`
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
}

// Key returns the ledger key for the (variant, abi, library) triple.
func (r ArtifactRecord) Key() string {
	return r.Variant + "/" + r.ABI + "/" + r.Library
}
