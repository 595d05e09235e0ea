package lualib

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed snippets/*.lua
var snippetFS embed.FS

// snippetFile maps a Feature to the embedded file holding its definition.
var snippetFile = map[Feature]string{
	FeatureArrayConcat:     "array_concat",
	FeatureArrayDelete:     "array_delete",
	FeatureArrayEvery:      "array_every",
	FeatureArrayFilter:     "array_filter",
	FeatureArrayFind:       "array_find",
	FeatureArrayFindIndex:  "array_find_index",
	FeatureArrayForEach:    "array_for_each",
	FeatureArrayIndexOf:    "array_index_of",
	FeatureArrayMap:        "array_map",
	FeatureArrayPush:       "array_push",
	FeatureArrayPop:        "array_pop",
	FeatureArrayReverse:    "array_reverse",
	FeatureArrayShift:      "array_shift",
	FeatureArraySort:       "array_sort",
	FeatureArraySome:       "array_some",
	FeatureArraySplice:     "array_splice",
	FeatureArrayUnshift:    "array_unshift",
	FeatureArrayIsArray:    "array_is_array",
	FeatureArraySetLength:  "array_set_length",
	FeatureStringSplit:     "string_split",
	FeatureStringReplace:   "string_replace",
	FeatureStringSlice:     "string_slice",
	FeatureStringConcat:    "string_concat",
	FeatureStringCharAt:    "string_char_at",
	FeatureStringPadStart:  "string_pad_start",
	FeatureStringPadEnd:    "string_pad_end",
	FeatureClassIndex:      "class_index",
	FeatureClassNewIndex:   "class_new_index",
	FeatureClassExtends:    "class",
	FeatureClassInstanceOf: "instance_of",
	FeatureDecorate:        "decorate",
	FeatureIterator:        "iterator",
	FeatureSpread:          "spread",
	FeatureSymbolRegistry:  "symbol_registry",
	FeatureMap:             "map",
	FeatureSet:             "set",
	FeatureNumberToString:  "number_to_string",
	FeatureObjectAssign:    "object_assign",
	FeatureObjectKeys:      "object_keys",
	FeatureObjectEntries:   "object_entries",
	FeatureInstanceOfObject: "instance_of_object",
}

// source returns the embedded Lua chunk defining f, stripped of its
// trailing newline, or an error noting which snippet file is missing (a
// programmer error: every Feature constant must have a matching file).
func source(f Feature) (string, error) {
	name, ok := snippetFile[f]
	if !ok {
		return "", fmt.Errorf("lualib: feature %d has no snippet mapping", f)
	}
	data, err := snippetFS.ReadFile("snippets/" + name + ".lua")
	if err != nil {
		return "", fmt.Errorf("lualib: reading snippet for %s: %w", f.Name(), err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// orderedFeatures returns used (already closed over dependencies) sorted by
// Feature id, giving deterministic bundle output across runs.
func orderedFeatures(used map[Feature]bool) []Feature {
	out := make([]Feature, 0, len(used))
	for f, on := range used {
		if on {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
