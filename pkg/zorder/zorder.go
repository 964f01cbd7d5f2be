// Package zorder implements Z-order (Morton code) encoding and decoding for
// 2D and 3D points, plus range-query utilities that split an axis-aligned
// bounding box into contiguous runs of Morton codes.
package zorder

import (
	"errors"
	"math/bits"
)

// ErrBBoxInverted is returned when a bounding box's bottom-right corner
// precedes its top-left corner in either dimension.
var ErrBBoxInverted = errors.New("zorder: bottom-right may not precede top-left in either dimension")

const (
	xMask2D = 0b01010101010101010101010101010101
	yMask2D = ^uint32(xMask2D)
)

// Encode2 interleaves the low 16 bits of x and y into a single Morton code,
// y occupying the odd bit positions and x the even ones.
func Encode2(x, y uint32) uint32 {
	return (part1By1(y) << 1) + part1By1(x)
}

// Encode3 interleaves the low 10 bits of each of x, y, z into a single Morton
// code: z occupies every third bit, then y, then x. Higher bits of any
// coordinate, including an 11th bit of x or y, are discarded.
func Encode3(x, y, z uint32) uint32 {
	return (part1By2(z) << 2) + (part1By2(y) << 1) + part1By2(x)
}

// Decode2X extracts the x coordinate from a 2D Morton code.
func Decode2X(code uint32) uint32 { return compact1By1(code) }

// Decode2Y extracts the y coordinate from a 2D Morton code.
func Decode2Y(code uint32) uint32 { return compact1By1(code >> 1) }

// Decode3X extracts the x coordinate from a 3D Morton code.
func Decode3X(code uint32) uint32 { return compact1By2(code) }

// Decode3Y extracts the y coordinate from a 3D Morton code.
func Decode3Y(code uint32) uint32 { return compact1By2(code >> 1) }

// Decode3Z extracts the z coordinate from a 3D Morton code.
func Decode3Z(code uint32) uint32 { return compact1By2(code >> 2) }

func wellFormedBBox(tl, br uint32) error {
	if (br&xMask2D < tl&xMask2D) || (br&yMask2D < tl&yMask2D) {
		return ErrBBoxInverted
	}
	return nil
}

// bbox2D returns the (width, height) of the bounding box with corners tl and
// br, assuming the box is well-formed; both are inclusive, so a degenerate
// box (tl == br) has width and height 1.
func bbox2D(tl, br uint32) (uint32, uint32, error) {
	if err := wellFormedBBox(tl, br); err != nil {
		return 0, 0, err
	}
	width := Decode2X(br) - Decode2X(tl) + 1
	height := Decode2Y(br) - Decode2Y(tl) + 1
	return width, height, nil
}

// rangeContainedInBBox2D reports whether every Morton code in [tl, br]
// falls inside its own bounding box, i.e. the linear range [tl, br] is
// exactly the Z-order traversal of a single rectangular region.
func rangeContainedInBBox2D(tl, br uint32) (bool, error) {
	width, height, err := bbox2D(tl, br)
	if err != nil {
		return false, err
	}
	count := width * height
	return br-tl < count, nil
}

// LitmaxBigmin2D splits the Morton-order range [min, max] at its most
// significant differing bit, returning (litmax, bigmin): litmax is the
// largest code below the split that still lies in the bounding box of
// [min, max], and bigmin is the smallest code at or above the split. Callers
// recurse on [min, litmax] and [bigmin, max] until each sub-range is fully
// contained in its bounding box.
func LitmaxBigmin2D(min, max uint32) (uint32, uint32) {
	if min == max {
		return min, max
	}
	if min > max {
		min, max = max, min
	}

	diff := min ^ max
	diffMSB := uint32(1) << (31 - bits.LeadingZeros32(diff))
	splitX := diffMSB&xMask2D > 0
	splitMask := uint32(yMask2D)
	if splitX {
		splitMask = xMask2D
	}
	majorMask := (diffMSB - 1) & splitMask
	minorMask := (diffMSB - 1) &^ splitMask
	common := min &^ (diffMSB + (diffMSB - 1))

	litmax := common | majorMask | (minorMask & max)
	bigmin := common | diffMSB | (minorMask & min)
	return litmax, bigmin
}

// SplitBBox2D decomposes the axis-aligned bounding box with corners tl and
// br into a sequence of contiguous Morton-code ranges, returned as a flat
// slice of (lo, hi) pairs in ascending order. It returns ErrBBoxInverted if
// br precedes tl in either dimension.
func SplitBBox2D(tl, br uint32) ([]uint32, error) {
	if err := wellFormedBBox(tl, br); err != nil {
		return nil, err
	}

	type interval struct{ lo, hi uint32 }
	stack := []interval{{tl, br}}
	var ret []uint32

	for len(stack) > 0 {
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		lo, hi := iv.lo, iv.hi

		contained, err := rangeContainedInBBox2D(lo, hi)
		if err != nil {
			return nil, err
		}
		if contained {
			if n := len(ret); n > 0 && ret[n-1]+1 == lo {
				ret[n-1] = hi
				continue
			}
			ret = append(ret, lo, hi)
			continue
		}

		litmax, bigmin := LitmaxBigmin2D(lo, hi)
		stack = append(stack, interval{bigmin, hi}, interval{lo, litmax})
	}
	return ret, nil
}

// part1By1 inserts a 0 bit after each of the 16 low bits of x.
func part1By1(x uint32) uint32 {
	x &= 0x0000ffff
	x = (x ^ (x << 8)) & 0x00ff00ff
	x = (x ^ (x << 4)) & 0x0f0f0f0f
	x = (x ^ (x << 2)) & 0x33333333
	x = (x ^ (x << 1)) & 0x55555555
	return x
}

// part1By2 inserts two 0 bits after each of the 10 low bits of x.
func part1By2(x uint32) uint32 {
	x &= 0x000003ff
	x = (x ^ (x << 16)) & 0xff0000ff
	x = (x ^ (x << 8)) & 0x0300f00f
	x = (x ^ (x << 4)) & 0x030c30c3
	x = (x ^ (x << 2)) & 0x09249249
	return x
}

// compact1By1 is the inverse of part1By1: it deletes every odd-indexed bit.
func compact1By1(x uint32) uint32 {
	x &= 0x55555555
	x = (x ^ (x >> 1)) & 0x33333333
	x = (x ^ (x >> 2)) & 0x0f0f0f0f
	x = (x ^ (x >> 4)) & 0x00ff00ff
	x = (x ^ (x >> 8)) & 0x0000ffff
	return x
}

// compact1By2 is the inverse of part1By2: it deletes every bit not at a
// position divisible by 3.
func compact1By2(x uint32) uint32 {
	x &= 0x09249249
	x = (x ^ (x >> 2)) & 0x030c30c3
	x = (x ^ (x >> 4)) & 0x0300f00f
	x = (x ^ (x >> 8)) & 0xff0000ff
	x = (x ^ (x >> 16)) & 0x000003ff
	return x
}
