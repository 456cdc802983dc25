// Package conv provides checked integer conversions and the decimal
// rounding applied to reported ratios and scores.
package conv
