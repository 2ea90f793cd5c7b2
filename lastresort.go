// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

// lastResort handles buffers that survived neither parsing nor repair: the
// whole file is decoded as a single raster image, inverted, and rewrapped
// as a minimal single-entry container. If the decode fails too, the input
// is unprocessable and no output is produced.
func lastResort(input []byte, opts Options) ([]byte, error) {
	img, err := decodeNRGBA(input)
	if err != nil {
		return nil, err
	}
	invertImage(img)

	encoded, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	out, _ := synthesizeContainer(encoded, b.Dx(), b.Dy(), 32)
	opts.Warnf("rewrapped %dx%d image as a single-entry container", b.Dx(), b.Dy())
	return out, nil
}
