package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/gifcore/decoder"
)

func main() {
	fmt.Println("GIF Decoder Example")
	fmt.Println("===================")

	if len(os.Args) < 2 {
		fmt.Println("usage: decode <input.gif> [output.png]")
		os.Exit(1)
	}

	in := os.Args[1]
	out := "decoded.png"
	if len(os.Args) >= 3 {
		out = os.Args[2]
	}

	if err := decodeFile(in, out); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Decoded %s -> %s\n", in, out)
}

func decodeFile(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := gifdecoder.Decode(f, gifdecoder.Options{})
	if err != nil {
		return err
	}

	fmt.Printf("decoded %dx%d raster\n", img.Single.Width(), img.Single.Height())

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()

	return png.Encode(w, img.Single)
}
