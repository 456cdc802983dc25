// Package metric turns match statistics into similarity and distance
// scores. Every score is rounded to four decimals.
//
// With n the identity count and fit, ref the set sizes:
//
//	Tanimoto  n / (fit + ref - n)
//	Tversky   n / (a(fit - n) + b(ref - n) + n)
//	Cosine    n / sqrt(fit * ref)
//	Dice      2n / (fit + ref)
//	PerScore  n / fit
//	Hamming   fit + ref - 2n
//	Soergel   (fit + ref - 2n) / (fit + ref - n)
package metric
