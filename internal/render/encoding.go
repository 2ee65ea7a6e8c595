package render

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Encoding is the byte encoding of the written page.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	// EncodingGB2312 writes EUC-CN; characters outside it are replaced.
	EncodingGB2312
)

func (e Encoding) String() string {
	if e == EncodingGB2312 {
		return "gb2312"
	}
	return "utf-8"
}

func encode(w io.Writer, enc Encoding, p []byte) error {
	if enc != EncodingGB2312 {
		_, err := w.Write(p)
		return err
	}

	tw := transform.NewWriter(w, encoding.ReplaceUnsupported(simplifiedchinese.GBK.NewEncoder()))
	if _, err := tw.Write(p); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return nil
}
