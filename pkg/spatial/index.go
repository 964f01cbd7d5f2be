// Package spatial is a small 2D point index demonstrating the wavelet
// matrix and Z-order packages together: points are Morton-encoded and kept
// in Z-order, backing one wavelet matrix over their codes (for box
// counting) and a second over a secondary attribute in the same order (for
// order-statistics queries within a region).
package spatial

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xflash-panda/succinct/pkg/bitvec"
	"github.com/xflash-panda/succinct/pkg/wavelet"
	"github.com/xflash-panda/succinct/pkg/zorder"
)

// DefaultCacheSize is the default size of an Index's box-query result
// cache, mirroring the teacher's metadb.DefaultCacheSize convention.
const DefaultCacheSize = 1024

// Point is a single indexed 2D point with an attached secondary attribute
// (e.g. a timestamp or weight) usable for order-statistics queries.
type Point struct {
	X, Y uint32
	Attr uint32
}

// Index holds a fixed set of points, sorted into Z-order, atop two wavelet
// matrices: one over Morton codes (for box counting) and one over Attr
// values in the same Z-order (for order statistics within a region).
type Index struct {
	points []Point
	codes  *wavelet.Matrix
	attrs  *wavelet.Matrix
	cache  *lru.Cache[boxKey, uint32]
}

type boxKey struct {
	tlX, tlY, brX, brY uint32
}

// NewIndex builds an Index over points, with a box-query result cache of
// cacheSize entries (DefaultCacheSize if cacheSize is 0).
func NewIndex(points []Point, cacheSize int) (*Index, error) {
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return zorder.Encode2(sorted[i].X, sorted[i].Y) < zorder.Encode2(sorted[j].X, sorted[j].Y)
	})

	codes := make([]uint32, len(sorted))
	attrs := make([]uint32, len(sorted))
	var maxCode, maxAttr uint32
	for i, p := range sorted {
		c := zorder.Encode2(p.X, p.Y)
		codes[i] = c
		attrs[i] = p.Attr
		if c > maxCode {
			maxCode = c
		}
		if p.Attr > maxAttr {
			maxAttr = p.Attr
		}
	}

	codesMatrix := wavelet.New(codes, maxCode, bitvec.DenseOptions{}, nil)
	attrsMatrix := wavelet.New(attrs, maxAttr, bitvec.DenseOptions{}, nil)

	cache, err := lru.New[boxKey, uint32](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("spatial: create box cache: %w", err)
	}

	return &Index{points: sorted, codes: codesMatrix, attrs: attrsMatrix, cache: cache}, nil
}

// Len returns the number of indexed points.
func (idx *Index) Len() int { return len(idx.points) }

// CountInBox returns the number of indexed points whose Morton code falls
// within the Z-order decomposition of the closed rectangle
// [tlX,tlY]-[brX,brY]. zorder.SplitBBox2D covers exactly the codes of that
// rectangle, so this is the exact number of points inside it. Results are
// cached per (tlX, tlY, brX, brY) corner tuple as given; the corners are not
// normalized.
func (idx *Index) CountInBox(tlX, tlY, brX, brY uint32) (uint32, error) {
	key := boxKey{tlX, tlY, brX, brY}
	if v, ok := idx.cache.Get(key); ok {
		return v, nil
	}

	tl := zorder.Encode2(tlX, tlY)
	br := zorder.Encode2(brX, brY)
	ranges, err := zorder.SplitBBox2D(tl, br)
	if err != nil {
		return 0, fmt.Errorf("spatial: split bounding box: %w", err)
	}

	symbolRanges := make([]wavelet.SymbolRange, 0, len(ranges)/2)
	for i := 0; i+1 < len(ranges); i += 2 {
		symbolRanges = append(symbolRanges, wavelet.SymbolRange{Lo: ranges[i], Hi: ranges[i+1]})
	}

	var total uint32
	for _, c := range idx.codes.CountBatch(0, idx.codes.Len(), symbolRanges) {
		total += c
	}

	idx.cache.Add(key, total)
	return total, nil
}

// QuantileInBox returns the k-th smallest Attr value (0-indexed) among the
// points whose Morton code lies in the linear code range between the codes
// of the two corners (not the finer quadtree decomposition CountInBox uses,
// so the range may include points outside the rectangle), together with how
// many indexed points share that Attr value within the same range.
func (idx *Index) QuantileInBox(tlX, tlY, brX, brY, k uint32) (attr uint32, count uint32, ok bool) {
	tl := zorder.Encode2(tlX, tlY)
	br := zorder.Encode2(brX, brY)
	if tl > br {
		tl, br = br, tl
	}

	start := uint32(sort.Search(len(idx.points), func(i int) bool {
		return zorder.Encode2(idx.points[i].X, idx.points[i].Y) >= tl
	}))
	end := uint32(sort.Search(len(idx.points), func(i int) bool {
		return zorder.Encode2(idx.points[i].X, idx.points[i].Y) > br
	}))
	if k >= end-start {
		return 0, 0, false
	}

	attr, count = idx.attrs.Quantile(start, end, k)
	return attr, count, true
}
