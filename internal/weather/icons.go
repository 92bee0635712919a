package weather

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// nightSuffix is appended to a condition code to select its night icon.
const nightSuffix = "night"

// IconTable maps condition codes ("3", "3night", "61", ...) to icon references.
// It is read-only after construction and safe to share between requests.
type IconTable struct {
	icons map[string]string
}

// NewIconTable copies entries into a new table.
func NewIconTable(entries map[string]string) IconTable {
	icons := make(map[string]string, len(entries))
	for k, v := range entries {
		icons[k] = v
	}
	return IconTable{icons: icons}
}

// LoadIconTable reads a JSON object of code -> icon reference from path.
func LoadIconTable(path string) (IconTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return IconTable{}, fmt.Errorf("open icon table: %w", err)
	}
	defer f.Close()

	var entries map[string]string
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return IconTable{}, fmt.Errorf("decode icon table %s: %w", path, err)
	}
	if len(entries) == 0 {
		return IconTable{}, fmt.Errorf("icon table %s is empty", path)
	}

	return IconTable{icons: entries}, nil
}

// Len reports the number of entries.
func (t IconTable) Len() int {
	return len(t.icons)
}

// hasNightVariant reports whether code belongs to the clear/partly-cloudy family.
func hasNightVariant(code int) bool {
	return code >= 0 && code <= 3
}

// Select returns the icon for a condition code, using the night variant for
// codes 0-3 when isDay is 0.
func (t IconTable) Select(code int, isDay int) (string, error) {
	key := strconv.Itoa(code)
	if isDay == 0 && hasNightVariant(code) {
		key += nightSuffix
	}
	return t.lookup(key)
}

// Day returns the day icon for a condition code.
func (t IconTable) Day(code int) (string, error) {
	return t.lookup(strconv.Itoa(code))
}

func (t IconTable) lookup(key string) (string, error) {
	icon, ok := t.icons[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownConditionCode, key)
	}
	return icon, nil
}
