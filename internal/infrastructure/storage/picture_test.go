package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func decodeSize(t *testing.T, data []byte) image.Point {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected jpeg output, got %s", format)
	}
	return image.Pt(cfg.Width, cfg.Height)
}

func TestNormalizePictureShrinksLargeImages(t *testing.T) {
	out, err := NormalizePicture(encodePNG(t, 2048, 1024))
	if err != nil {
		t.Fatalf("NormalizePicture: %v", err)
	}
	if got := decodeSize(t, out); got != image.Pt(1024, 512) {
		t.Fatalf("unexpected size %v", got)
	}
}

func TestNormalizePictureKeepsSmallImages(t *testing.T) {
	out, err := NormalizePicture(encodePNG(t, 300, 200))
	if err != nil {
		t.Fatalf("NormalizePicture: %v", err)
	}
	if got := decodeSize(t, out); got != image.Pt(300, 200) {
		t.Fatalf("unexpected size %v", got)
	}
}

func TestNormalizePictureRejectsGarbage(t *testing.T) {
	if _, err := NormalizePicture(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected decode error")
	}
}
