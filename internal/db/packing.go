package db

import "strings"

// The two requirement lists share a single text column, as do mission and
// culture; the values are joined with a literal separator. The format has no
// per-item escaping, so an item containing the separator corrupts the round
// trip. That limitation is part of the stored-data contract and is kept.
const (
	fieldSeparator = "|||"
	listSeparator  = ", "
)

// PackRequirements combines the tech and behavioral requirement lists into
// one text value: "<tech csv>|||<behavioral csv>".
func PackRequirements(tech, behavioral []string) string {
	return strings.Join(tech, listSeparator) + fieldSeparator + strings.Join(behavioral, listSeparator)
}

// UnpackRequirements splits a packed requirements value. A value without the
// separator is a legacy record: the whole value is tech requirements and the
// behavioral list is empty.
func UnpackRequirements(packed string) (tech, behavioral []string) {
	if packed == "" {
		return nil, nil
	}
	if !strings.Contains(packed, fieldSeparator) {
		return splitList(packed), nil
	}
	parts := strings.SplitN(packed, fieldSeparator, 2)
	return splitList(parts[0]), splitList(parts[1])
}

// PackProfile combines mission and culture into "<mission>|||<culture>"
func PackProfile(mission, culture string) string {
	return mission + fieldSeparator + culture
}

// UnpackProfile splits a packed profile value. A value without the separator
// is treated entirely as the mission.
func UnpackProfile(packed string) (mission, culture string) {
	if packed == "" {
		return "", ""
	}
	if !strings.Contains(packed, fieldSeparator) {
		return strings.TrimSpace(packed), ""
	}
	parts := strings.SplitN(packed, fieldSeparator, 2)
	return parts[0], parts[1]
}

// PackList joins a list of strings with the field separator, used for the
// missing-skills and interview-questions columns.
func PackList(items []string) string {
	return strings.Join(items, fieldSeparator)
}

// UnpackList splits a "|||"-joined value back into its items
func UnpackList(packed string) []string {
	if packed == "" {
		return nil
	}
	return strings.Split(packed, fieldSeparator)
}

// splitList splits a ", "-joined list, trimming items and dropping empties
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, listSeparator) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
