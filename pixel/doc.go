// Package pixel implements the color and image types used for Graphics Output Protocol buffers.
//
// Blt buffers are rows of [efi.BltPixel] values (blue, green, red, reserved). This package makes
// them usable through Go's native [color.Color] and [image.Image] / [draw.Image] interfaces, and
// converts them to and from the native layout of a frame buffer described by channel masks.
package pixel
