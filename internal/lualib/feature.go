// Package lualib is spec.md §4.9's LuaLibRegistry: the closed set of
// runtime-support helpers the lowering passes may call into
// (__TS__ArrayPush, __TS__iterator, ...), a registry recording which of
// them one file's transformation actually used, and the bundling of their
// Lua source into the final output.
//
// Grounded on the teacher's internal/directive/registry.go mutex-guarded,
// append-only registry idiom (vovakirdan-surge); the embedded-snippet
// bundling is grounded on the now-retired runtime/native_embed.go's
// go:embed approach, retargeted from a C native runtime to hand-written
// Lua runtime snippets.
package lualib

// Feature is one named runtime helper a lowering decision can pull in.
// Unlike the teacher's open-ended directive registry, this is a closed
// enum: every value must have a matching snippet file and printed call
// site, so an unregistered helper is a compile-time error, not a runtime
// surprise.
type Feature uint16

const (
	FeatureArrayConcat Feature = iota + 1
	FeatureArrayDelete
	FeatureArrayEvery
	FeatureArrayFilter
	FeatureArrayFind
	FeatureArrayFindIndex
	FeatureArrayForEach
	FeatureArrayIndexOf
	FeatureArrayMap
	FeatureArrayPush
	FeatureArrayPop
	FeatureArrayReverse
	FeatureArrayShift
	FeatureArraySort
	FeatureArraySome
	FeatureArraySplice
	FeatureArrayUnshift
	FeatureArrayIsArray
	FeatureArraySetLength
	FeatureStringSplit
	FeatureStringReplace
	FeatureStringSlice
	FeatureStringConcat
	FeatureStringCharAt
	FeatureStringPadStart
	FeatureStringPadEnd
	FeatureClassIndex
	FeatureClassNewIndex
	FeatureClassExtends
	FeatureClassInstanceOf
	FeatureDecorate
	FeatureIterator
	FeatureSpread
	FeatureSymbolRegistry
	FeatureMap
	FeatureSet
	FeatureNumberToString
	FeatureObjectAssign
	FeatureObjectKeys
	FeatureObjectEntries
	FeatureInstanceOfObject

	featureCount
)

// names holds the identifier each Feature is printed as; the embedded Lua
// chunk that defines it is looked up through snippetFile in embed.go.
var names = [...]string{
	FeatureArrayConcat:     "__TS__ArrayConcat",
	FeatureArrayDelete:     "__TS__ArrayDelete",
	FeatureArrayEvery:      "__TS__ArrayEvery",
	FeatureArrayFilter:     "__TS__ArrayFilter",
	FeatureArrayFind:       "__TS__ArrayFind",
	FeatureArrayFindIndex:  "__TS__ArrayFindIndex",
	FeatureArrayForEach:    "__TS__ArrayForEach",
	FeatureArrayIndexOf:    "__TS__ArrayIndexOf",
	FeatureArrayMap:        "__TS__ArrayMap",
	FeatureArrayPush:       "__TS__ArrayPush",
	FeatureArrayPop:        "__TS__ArrayPop",
	FeatureArrayReverse:    "__TS__ArrayReverse",
	FeatureArrayShift:      "__TS__ArrayShift",
	FeatureArraySort:       "__TS__ArraySort",
	FeatureArraySome:       "__TS__ArraySome",
	FeatureArraySplice:     "__TS__ArraySplice",
	FeatureArrayUnshift:    "__TS__ArrayUnshift",
	FeatureArrayIsArray:    "__TS__ArrayIsArray",
	FeatureArraySetLength:  "__TS__ArraySetLength",
	FeatureStringSplit:     "__TS__StringSplit",
	FeatureStringReplace:   "__TS__StringReplace",
	FeatureStringSlice:     "__TS__StringSlice",
	FeatureStringConcat:    "__TS__StringConcat",
	FeatureStringCharAt:    "__TS__StringCharAt",
	FeatureStringPadStart:  "__TS__StringPadStart",
	FeatureStringPadEnd:    "__TS__StringPadEnd",
	FeatureClassIndex:      "__TS__ClassIndex",
	FeatureClassNewIndex:   "__TS__ClassNewIndex",
	FeatureClassExtends:    "__TS__Class",
	FeatureClassInstanceOf: "__TS__InstanceOf",
	FeatureDecorate:        "__TS__Decorate",
	FeatureIterator:        "__TS__iterator",
	FeatureSpread:          "__TS__Spread",
	FeatureSymbolRegistry:  "__TS__SymbolRegistry",
	FeatureMap:             "__TS__Map",
	FeatureSet:             "__TS__Set",
	FeatureNumberToString:  "__TS__NumberToString",
	FeatureObjectAssign:    "__TS__ObjectAssign",
	FeatureObjectKeys:      "__TS__ObjectKeys",
	FeatureObjectEntries:   "__TS__ObjectEntries",
	FeatureInstanceOfObject: "__TS__InstanceOfObject",
}

// Name returns the identifier internal/lower emits as a call target for f.
func (f Feature) Name() string {
	if int(f) >= len(names) {
		return ""
	}
	return names[f]
}

// dependencies lists features a snippet calls into, so Emit can pull its
// transitive closure into the bundle without every lowering call site
// having to know the dependency graph itself.
var dependencies = map[Feature][]Feature{
	FeatureArrayDelete:     {FeatureArraySetLength},
	FeatureArraySplice:     {FeatureArraySetLength},
	FeatureArrayShift:      {FeatureArraySetLength},
	FeatureArrayUnshift:    {FeatureArraySetLength},
	FeatureArrayPop:        {FeatureArraySetLength},
	FeatureClassExtends:    {FeatureClassIndex, FeatureClassNewIndex},
	FeatureClassInstanceOf: {FeatureInstanceOfObject},
	FeatureSpread:          {FeatureIterator},
	FeatureMap:             {FeatureClassExtends},
	FeatureSet:             {FeatureClassExtends},
	FeatureStringSplit:     {},
}

// Closure returns used plus every feature reachable through dependencies.
func Closure(used map[Feature]bool) map[Feature]bool {
	out := make(map[Feature]bool, len(used))
	var visit func(Feature)
	visit = func(f Feature) {
		if out[f] {
			return
		}
		out[f] = true
		for _, dep := range dependencies[f] {
			visit(dep)
		}
	}
	for f, on := range used {
		if on {
			visit(f)
		}
	}
	return out
}
