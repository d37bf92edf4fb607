package codec_test

import (
	"errors"
	"image"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/tacusci/rawforge/internal/codec"
	"github.com/tacusci/rawforge/internal/codec/mocks"
)

func TestSelectReturnsFirstMatchingProbe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := mocks.NewMockDecoder(ctrl)
	b := mocks.NewMockDecoder(ctrl)
	data := []byte{0xff, 0x4f, 0x00, 0x00}

	a.EXPECT().Probe(data).Return(false)
	b.EXPECT().Probe(data).Return(true)

	got, ok := codec.Select(data, a, b)
	if !ok || got != b {
		t.Fatalf("expected b to be selected, got %v ok=%v", got, ok)
	}
}

func TestSelectReportsNoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := mocks.NewMockDecoder(ctrl)
	data := []byte{0x00, 0x00}
	a.EXPECT().Probe(data).Return(false)

	_, ok := codec.Select(data, a)
	if ok {
		t.Fatal("expected no decoder to match")
	}
}

func TestMockDecoderSatisfiesInterfaceAndReturnsFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockDecoder(ctrl)
	var img image.Image
	m.EXPECT().Decode(gomock.Any()).Return(img, nil)
	m.EXPECT().Info(gomock.Any()).Return(codec.FrameInfo{Width: 10, Height: 10}, errors.New("unused"))

	if _, err := m.Decode(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Info(nil); err == nil {
		t.Fatal("expected the stubbed error")
	}
}

var _ codec.Decoder = (*mocks.MockDecoder)(nil)
