// Package image565 provides the 16-bit RGB565 pixel format used on the
// ILI9163C memory write bus.
//
// Each pixel is 5 bits of red, 6 bits of green and 5 bits of blue packed in a
// 16-bit word, sent high byte first:
//
//	bit:   15 14 13 12 11 10 9 8 7 6 5 4 3 2 1 0
//	       r  r  r  r  r  g  g g g g g b b b b b
//
// This package provides:
//
// - RGB565: a color.Color for a packed word
// - Model: a color model converting standard Go colors to RGB565
// - Image: an image.Image whose Pix is laid out exactly as the panel expects
//
// Example usage:
//
//	img := image565.NewImage(image.Rect(0, 0, 128, 128))
//	img.SetRGB565(10, 20, image565.FromRGB(255, 128, 0))
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package image565
