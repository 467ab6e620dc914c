package parsers

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"ukeview/model"
)

// Format はCLIの --format に渡す出力形式です。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatSVG  Format = "svg"
)

// ErrEmptyInput は出力が空だったときのエラーです。
var ErrEmptyInput = errors.New("parsers: empty input")

// ParseFormat は --input の値を解釈します。
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatSVG:
		return Format(s), nil
	}
	return "", fmt.Errorf("不明な出力形式です: %q", s)
}

// Decode は format に従ってCLI出力を読み込みます。
func Decode(format Format, r io.Reader) (model.ReceiptisanOutput, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	default:
		return nil, fmt.Errorf("%s 形式はデータとして読み込めません", format)
	}
}

func readAll(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(SkipBOM(r))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ErrEmptyInput
	}
	return b, nil
}

// DecodeJSON は --format=json の出力を読み込みます。
func DecodeJSON(r io.Reader) (model.ReceiptisanOutput, error) {
	b, err := readAll(r)
	if err != nil {
		return nil, err
	}
	var out model.ReceiptisanOutput
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to decode receipt json: %w", err)
	}
	return out, nil
}

// DecodeYAML は --format=yaml の出力を読み込みます。
// YAMLを汎用の値に読み込んでからJSONに変換し、DecodeJSON と同じ型変換を通します。
func DecodeYAML(r io.Reader) (model.ReceiptisanOutput, error) {
	b, err := readAll(r)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode receipt yaml: %w", err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert receipt yaml: %w", err)
	}
	return DecodeJSON(bytes.NewReader(js))
}
