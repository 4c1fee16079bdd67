// Package plot renders the result of a curvefit run as a PNG image.
//
// The image shows every reference curve (unchosen ones in light gray), the
// chosen reference curves in palette colours with their tolerance band, the
// training samples as gray dots and the classified test observations: matched
// ones in a darkened colour of their curve, unmatched ones in gray.
//
// Charts are drawn with github.com/wcharczuk/go-chart/v2. The legend and the
// caption are drawn onto the rendered image with the 7x13 bitmap font from
// golang.org/x/image/font/basicfont.
package plot
