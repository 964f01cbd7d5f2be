package wavelet

import "github.com/xflash-panda/succinct/pkg/zorder"

// symbolRangeOverlapsHalfOpen reports whether the inclusive symbol range
// [lo, hi] overlaps the half-open node range [start, end).
func symbolRangeOverlapsHalfOpen(lo, hi, start, end uint32) bool {
	if start >= end {
		return false
	}
	return lo <= end-1 && start <= hi
}

// symbolRangeFullyContainsHalfOpen reports whether the inclusive symbol
// range [lo, hi] fully contains the half-open node range [start, end).
func symbolRangeFullyContainsHalfOpen(lo, hi, start, end uint32) bool {
	if start >= end {
		return true
	}
	return lo <= start && end-1 <= hi
}

// SymbolRange is an inclusive [Lo, Hi] symbol range, used to restrict
// CountBatch and MortonCountBatch queries to a band of symbol values.
type SymbolRange struct {
	Lo, Hi uint32
}

// CountBatch counts the occurrences, within [rangeStart, rangeEnd), of
// symbols falling in each of symbolRanges, returning one count per range.
func (m *Matrix) CountBatch(rangeStart, rangeEnd uint32, symbolRanges []SymbolRange) []uint32 {
	counts := make([]uint32, len(symbolRanges))
	init := make([]any, len(symbolRanges))
	for i := range symbolRanges {
		init[i] = countSymbolRangeState{symbol: 0, start: rangeStart, end: rangeEnd}
	}
	traversal := NewTraversal(init)

	for i := range m.lvls {
		level := &m.lvls[i]
		traversal.Traverse(func(xs []KeyVal, goer *Goer) {
			for _, x := range xs {
				st := x.Val.(countSymbolRangeState)
				sr := symbolRanges[x.Key]
				left, mid, right := level.Splits(st.symbol)
				startR0, startR1 := level.Ranks(st.start)
				endR0, endR1 := level.Ranks(st.end)

				if startR0 != endR0 {
					if symbolRangeFullyContainsHalfOpen(sr.Lo, sr.Hi, left, mid) {
						counts[x.Key] += endR0 - startR0
					} else if symbolRangeOverlapsHalfOpen(sr.Lo, sr.Hi, left, mid) {
						goer.Left(x.val(countSymbolRangeState{left, startR0, endR0}))
					}
				}
				if startR1 != endR1 {
					if symbolRangeFullyContainsHalfOpen(sr.Lo, sr.Hi, mid, right) {
						counts[x.Key] += endR1 - startR1
					} else if symbolRangeOverlapsHalfOpen(sr.Lo, sr.Hi, mid, right) {
						goer.Right(x.val(countSymbolRangeState{mid, level.nz + startR1, level.nz + endR1}))
					}
				}
			}
		})
	}
	return counts
}

type countSymbolRangeState struct {
	symbol, start, end uint32
}

// MortonCountBatch is CountBatch's morton-masked counterpart: each level
// only considers the bits named by its morton mask (see New's mortonMasks
// parameter) when deciding symbol-range containment, allowing symbolRanges
// to express multidimensional bounding-box queries over Z-order-encoded
// symbols.
func (m *Matrix) MortonCountBatch(rangeStart, rangeEnd uint32, symbolRanges []SymbolRange) []uint32 {
	counts := make([]uint32, len(symbolRanges))
	init := make([]any, len(symbolRanges))
	for i := range symbolRanges {
		init[i] = mortonCountState{accumulatedMasks: 0, symbol: 0, start: rangeStart, end: rangeEnd}
	}
	traversal := NewTraversal(init)

	var allMasks uint32
	for i := range m.lvls {
		allMasks |= m.lvls[i].mask
	}

	for i := range m.lvls {
		level := &m.lvls[i]
		traversal.Traverse(func(xs []KeyVal, goer *Goer) {
			for _, x := range xs {
				st := x.Val.(mortonCountState)
				sr := symbolRanges[x.Key]
				maskedLo, maskedHi := sr.Lo&level.mask, sr.Hi&level.mask
				leftLo, leftHi, rightLo, rightHi := level.childSymbolRanges(st.symbol, level.mask)

				startR0, startR1 := level.Ranks(st.start)
				endR0, endR1 := level.Ranks(st.end)

				if startR0 != endR0 {
					contains := maskedLo <= leftLo && leftHi <= maskedHi
					accum := st.accumulatedMasks &^ level.mask
					if contains {
						accum = st.accumulatedMasks | level.mask
					}
					if contains && accum == allMasks {
						counts[x.Key] += endR0 - startR0
					} else if maskedLo <= leftHi && leftLo <= maskedHi {
						goer.Left(x.val(mortonCountState{accum, st.symbol, startR0, endR0}))
					}
				}
				if startR1 != endR1 {
					contains := maskedLo <= rightLo && rightHi <= maskedHi
					accum := st.accumulatedMasks &^ level.mask
					if contains {
						accum = st.accumulatedMasks | level.mask
					}
					if contains && accum == allMasks {
						counts[x.Key] += endR1 - startR1
					} else if maskedLo <= rightHi && rightLo <= maskedHi {
						goer.Right(x.val(mortonCountState{accum, st.symbol | level.bit, level.nz + startR1, level.nz + endR1}))
					}
				}
			}
		})
	}
	return counts
}

type mortonCountState struct {
	accumulatedMasks, symbol, start, end uint32
}

type countsState struct {
	symbol, start, end uint32
}

// CountsEntry is one (range, symbol-node) pair produced by Counts or
// MortonCounts: RangeIndex names which input range this entry came from,
// and [Start, End) is that symbol's occurrence range within it.
type CountsEntry struct {
	RangeIndex     int
	Symbol         uint32
	Start, End     uint32
}

// Counts enumerates, for each of ranges (pairs of [start, end) sequence
// indices), every symbol within [symbolLo, symbolHi] that occurs in that
// range, together with its occurrence range. Unlike CountBatch it does not
// collapse matches into a single count per query; it is intended for
// callers that want to recover the individual matching symbols.
func (m *Matrix) Counts(ranges [][2]uint32, symbolLo, symbolHi uint32) []CountsEntry {
	for _, r := range ranges {
		if r[1] > m.length {
			panic("wavelet: range end exceeds sequence length")
		}
	}
	init := make([]any, len(ranges))
	for i, r := range ranges {
		init[i] = countsState{symbol: 0, start: r[0], end: r[1]}
	}
	traversal := NewTraversal(init)

	for i := range m.lvls {
		level := &m.lvls[i]
		traversal.Traverse(func(xs []KeyVal, goer *Goer) {
			var cache RangedRankCache
			for _, x := range xs {
				st := x.Val.(countsState)
				left, mid, right := level.Splits(st.symbol)
				startR0, startR1, endR0, endR1 := cache.Get(st.start, st.end, level)

				if startR0 != endR0 && symbolRangeOverlapsHalfOpen(symbolLo, symbolHi, left, mid) {
					goer.Left(x.val(countsState{st.symbol, startR0, endR0}))
				}
				if startR1 != endR1 && symbolRangeOverlapsHalfOpen(symbolLo, symbolHi, mid, right) {
					goer.Right(x.val(countsState{st.symbol | level.bit, level.nz + startR1, level.nz + endR1}))
				}
			}
		})
	}

	results := traversal.Results()
	entries := make([]CountsEntry, 0, len(results))
	for _, kv := range results {
		st := kv.Val.(countsState)
		entries = append(entries, CountsEntry{RangeIndex: kv.Key, Symbol: st.symbol, Start: st.start, End: st.end})
	}
	return entries
}

// MortonCounts is Counts's morton-masked counterpart: the bottom ignoreBits
// levels are skipped, and each considered level restricts
// symbolLo/symbolHi to the bits named by its morton mask.
func (m *Matrix) MortonCounts(ranges [][2]uint32, symbolLo, symbolHi uint32, ignoreBits int) []CountsEntry {
	for _, r := range ranges {
		if r[1] > m.length {
			panic("wavelet: range end exceeds sequence length")
		}
	}
	init := make([]any, len(ranges))
	for i, r := range ranges {
		init[i] = countsState{symbol: 0, start: r[0], end: r[1]}
	}
	traversal := NewTraversal(init)

	for i := range m.levels(ignoreBits) {
		level := &m.lvls[i]
		maskedLo, maskedHi := symbolLo&level.mask, symbolHi&level.mask
		traversal.Traverse(func(xs []KeyVal, goer *Goer) {
			var cache RangedRankCache
			for _, x := range xs {
				st := x.Val.(countsState)
				leftLo, leftHi, rightLo, rightHi := level.childSymbolRanges(st.symbol, level.mask)
				startR0, startR1, endR0, endR1 := cache.Get(st.start, st.end, level)

				if startR0 != endR0 && maskedLo <= leftHi && leftLo <= maskedHi {
					goer.Left(x.val(countsState{st.symbol, startR0, endR0}))
				}
				if startR1 != endR1 && maskedLo <= rightHi && rightLo <= maskedHi {
					goer.Right(x.val(countsState{st.symbol | level.bit, level.nz + startR1, level.nz + endR1}))
				}
			}
		})
	}

	results := traversal.Results()
	entries := make([]CountsEntry, 0, len(results))
	for _, kv := range results {
		st := kv.Val.(countsState)
		entries = append(entries, CountsEntry{RangeIndex: kv.Key, Symbol: st.symbol, Start: st.start, End: st.end})
	}
	return entries
}

// SelectFirstLessThan returns the leftmost (in sequence order) index within
// [rangeStart, rangeEnd) whose symbol is at most p, or false if none
// exists.
func (m *Matrix) SelectFirstLessThan(p, rangeStart, rangeEnd uint32) (uint32, bool) {
	numLevels := len(m.lvls)
	var symbol uint32
	best := ^uint32(0)
	found := false

	for i := 0; i < numLevels; i++ {
		if rangeStart >= rangeEnd {
			break
		}
		level := &m.lvls[i]
		ignoreBits := numLevels - i
		left, mid, right := level.Splits(symbol)

		if symbolRangeFullyContainsHalfOpen(0, p, left, right) {
			candidate, ok := m.SelectUpwards(rangeStart, ignoreBits)
			if ok && candidate < best {
				best = candidate
			}
			return best, true
		}

		startR0, startR1 := level.Ranks(rangeStart)
		endR0, endR1 := level.Ranks(rangeEnd)

		if !symbolRangeFullyContainsHalfOpen(0, p, left, mid) {
			rangeStart, rangeEnd = startR0, endR0
		} else {
			if startR0 != endR0 {
				candidate, ok := m.SelectUpwards(startR0, ignoreBits-1)
				if ok && candidate < best {
					best = candidate
					found = true
				}
			}
			symbol += level.bit
			rangeStart, rangeEnd = level.nz+startR1, level.nz+endR1
		}
	}

	if found {
		return best, true
	}
	return 0, false
}

type locateBatchState struct {
	symbol, precedingCount, start, end uint32
}

// LocateBatchEntry is one result of LocateBatch: the occurrence range of
// symbols[SymbolIndex] within ranges[RangeIndex], restricted to the virtual
// bottom level, along with how many symbols strictly less than it precede
// that range.
type LocateBatchEntry struct {
	SymbolIndex    int
	RangeIndex     int
	PrecedingCount uint32
	Start, End     uint32
}

// LocateBatch runs Locate for the cross product of symbols and ranges in a
// single traversal, amortizing the per-level bit-vector work.
func (m *Matrix) LocateBatch(ranges [][2]uint32, symbols []uint32) []LocateBatchEntry {
	init := make([]any, 0, len(symbols)*len(ranges))
	origin := make([][2]int, 0, len(symbols)*len(ranges))
	for si, sym := range symbols {
		if sym > m.maxSymbol {
			panic("wavelet: symbol exceeds max symbol")
		}
		for ri, r := range ranges {
			init = append(init, locateBatchState{symbol: sym, precedingCount: 0, start: r[0], end: r[1]})
			origin = append(origin, [2]int{si, ri})
		}
	}
	traversal := NewTraversal(init)

	for i := range m.lvls {
		level := &m.lvls[i]
		traversal.Traverse(func(xs []KeyVal, goer *Goer) {
			for _, x := range xs {
				st := x.Val.(locateBatchState)
				startR0, startR1 := level.Ranks(st.start)
				endR0, endR1 := level.Ranks(st.end)
				if st.symbol&level.bit == 0 {
					goer.Left(x.val(locateBatchState{st.symbol, st.precedingCount, startR0, endR0}))
				} else {
					goer.Right(x.val(locateBatchState{
						st.symbol,
						st.precedingCount + endR0 - startR0,
						level.nz + startR1,
						level.nz + endR1,
					}))
				}
			}
		})
	}

	results := traversal.Results()
	entries := make([]LocateBatchEntry, 0, len(results))
	for _, kv := range results {
		st := kv.Val.(locateBatchState)
		origin := origin[kv.Key]
		entries = append(entries, LocateBatchEntry{
			SymbolIndex:    origin[0],
			RangeIndex:     origin[1],
			PrecedingCount: st.precedingCount,
			Start:          st.start,
			End:            st.end,
		})
	}
	return entries
}

// MortonMasksForDims returns one morton mask per level (most significant
// first), cycling through the per-dimension masks for a dims-dimensional
// Z-order encoding (1, 2, or 3 dimensions). The result is intended to be
// passed as New's mortonMasks argument.
func (m *Matrix) MortonMasksForDims(dims uint32) []uint32 {
	var base []uint32
	switch dims {
	case 1:
		base = []uint32{^uint32(0)}
	case 2:
		base = []uint32{zorder.Encode2(0, ^uint32(0)), zorder.Encode2(^uint32(0), 0)}
	case 3:
		base = []uint32{
			zorder.Encode3(0, 0, ^uint32(0)),
			zorder.Encode3(0, ^uint32(0), 0),
			zorder.Encode3(^uint32(0), 0, 0),
		}
	default:
		panic("wavelet: only 1-3 dimensions are supported")
	}
	masks := make([]uint32, len(m.lvls))
	for i := range masks {
		masks[i] = base[i%len(base)]
	}
	return masks
}
