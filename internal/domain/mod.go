package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

// ManifestName is the file name that marks a mod folder.
const ManifestName = "manifest.json"

// ModManifest is the metadata a mod ships in its manifest.json.
type ModManifest struct {
	Name         string          `json:"Name"`
	Author       string          `json:"Author"`
	Version      string          `json:"Version"`
	Description  string          `json:"Description,omitempty"`
	UniqueID     string          `json:"UniqueID"`
	Dependencies []ModDependency `json:"Dependencies,omitempty"`
	UpdateKeys   []string        `json:"UpdateKeys,omitempty"`
}

// ModDependency is one entry of a manifest's Dependencies list.
type ModDependency struct {
	UniqueID   string
	Version    string // minimum version, empty when unspecified
	IsRequired bool
	Extra      map[string]json.RawMessage // fields this manager does not interpret
}

// ID returns the manifest's unique ID with surrounding whitespace removed.
func (m ModManifest) ID() string {
	return strings.TrimSpace(m.UniqueID)
}

// InstalledMod is a parsed manifest bound to the folder it was found in.
type InstalledMod struct {
	ModManifest
	Path     string    // folder containing manifest.json
	Active   bool      // true when found under the mods root
	Modified time.Time // manifest modification time
}

// ParseManifest decodes manifest bytes. Comments and trailing commas are
// accepted, and keys match case-insensitively with underscores ignored.
func ParseManifest(data []byte) (*ModManifest, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestParse, err)
	}

	var m ModManifest
	if err := json.Unmarshal(std, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestParse, err)
	}
	return &m, nil
}

// normalizeKey folds a JSON key to the form used for field matching.
func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

// foldFields indexes an object's members by normalized key. Two members
// that normalize to the same key are rejected.
func foldFields(data []byte) (map[string]json.RawMessage, map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	fields := make(map[string]json.RawMessage, len(raw))
	original := make(map[string]string, len(raw))
	for k, v := range raw {
		nk := normalizeKey(k)
		if prev, ok := original[nk]; ok {
			return nil, nil, fmt.Errorf("duplicate field %q and %q", prev, k)
		}
		fields[nk] = v
		original[nk] = k
	}
	return fields, original, nil
}

func decodeField(fields map[string]json.RawMessage, key string, dst any) (bool, error) {
	v, ok := fields[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return true, fmt.Errorf("field %s: %w", key, err)
	}
	return true, nil
}

func (m *ModManifest) UnmarshalJSON(data []byte) error {
	fields, _, err := foldFields(data)
	if err != nil {
		return err
	}

	var out ModManifest
	required := []struct {
		key string
		dst *string
	}{
		{"name", &out.Name},
		{"author", &out.Author},
		{"version", &out.Version},
		{"uniqueid", &out.UniqueID},
	}
	for _, r := range required {
		found, err := decodeField(fields, r.key, r.dst)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("missing field %s", r.key)
		}
	}

	var desc *string
	if _, err := decodeField(fields, "description", &desc); err != nil {
		return err
	}
	if desc != nil {
		out.Description = *desc
	}
	if _, err := decodeField(fields, "dependencies", &out.Dependencies); err != nil {
		return err
	}
	if _, err := decodeField(fields, "updatekeys", &out.UpdateKeys); err != nil {
		return err
	}

	*m = out
	return nil
}

func (d *ModDependency) UnmarshalJSON(data []byte) error {
	fields, original, err := foldFields(data)
	if err != nil {
		return err
	}

	var out ModDependency
	found, err := decodeField(fields, "uniqueid", &out.UniqueID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("dependency: missing field uniqueid")
	}
	delete(fields, "uniqueid")

	for _, key := range []string{"version", "minimumversion"} {
		var v *string
		if _, err := decodeField(fields, key, &v); err != nil {
			return err
		}
		if v != nil {
			out.Version = *v
		}
		delete(fields, key)
	}

	var required *bool
	if _, err := decodeField(fields, "isrequired", &required); err != nil {
		return err
	}
	if required != nil {
		out.IsRequired = *required
	}
	delete(fields, "isrequired")

	if len(fields) > 0 {
		out.Extra = make(map[string]json.RawMessage, len(fields))
		for nk, v := range fields {
			out.Extra[original[nk]] = v
		}
	}

	*d = out
	return nil
}
