package espeak

import (
	"fmt"
	"io"
)

// inputKind enumerates the closed set of Say input variants.
type inputKind int

const (
	inputInvalid inputKind = iota
	inputText
	inputStream
)

// Input is the value accepted by Session.Say: either literal text or a
// readable stream. The zero Input is the unsupported case and Say rejects
// it with ErrUnsupportedInput.
type Input struct {
	kind inputKind
	text string
	r    io.Reader
}

// Text wraps literal text for speaking.
func Text(s string) Input {
	return Input{kind: inputText, text: s}
}

// Stream wraps a readable stream for speaking. Its entire remaining
// content is read to completion before transmission. A nil reader yields
// the unsupported zero Input.
func Stream(r io.Reader) Input {
	if r == nil {
		return Input{}
	}
	return Input{kind: inputStream, r: r}
}

// content resolves the input to its text, reading streams eagerly.
func (in Input) content() (string, error) {
	switch in.kind {
	case inputText:
		return in.text, nil
	case inputStream:
		b, err := io.ReadAll(in.r)
		if err != nil {
			return "", fmt.Errorf("unable to read input stream: %w", err)
		}
		return string(b), nil
	default:
		return "", ErrUnsupportedInput
	}
}
