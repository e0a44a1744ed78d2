// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"encoding/json"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
)

// DocumentVersion tags every persisted document. Documents carrying another
// version are discarded on load; there is no migration.
const DocumentVersion = 1

// document is the persisted layout: the version tag next to the flattened profile.
type document struct {
	Version int `json:"version"`
	Profile
}

// Encode serializes p into a versioned document.
func Encode(p Profile) ([]byte, error) {
	data, err := json.Marshal(document{Version: DocumentVersion, Profile: p.Clone()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}

// Decode parses a versioned document and validates it against c.
// Errors wrap ErrMalformedDocument, ErrVersionMismatch or ErrInvalidProfile.
func Decode(data []byte, c *curriculum.Curriculum) (Profile, error) {
	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if probe.Version == nil {
		return Profile{}, fmt.Errorf("%w: missing version tag", ErrVersionMismatch)
	}
	if *probe.Version != DocumentVersion {
		return Profile{}, fmt.Errorf("%w: got %d, expected %d", ErrVersionMismatch, *probe.Version, DocumentVersion)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	p := doc.Profile.Clone()
	if err := Validate(p, c); err != nil {
		return Profile{}, err
	}
	return p, nil
}
