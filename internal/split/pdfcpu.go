// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPU opens documents with pdfcpu. A nil Conf uses pdfcpu's default
// configuration.
type PDFCPU struct {
	Conf *model.Configuration
}

// Open reads, validates, and optimizes the PDF at path. The file is read
// fully into memory and closed before Open returns.
func (p PDFCPU) Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	conf := p.Conf
	if conf == nil {
		conf = model.NewDefaultConfiguration()
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("parsing PDF: %w", err)
	}
	return &pdfcpuDocument{ctx: ctx}, nil
}

type pdfcpuDocument struct {
	ctx *model.Context
}

func (d *pdfcpuDocument) PageCount() int {
	return d.ctx.PageCount
}

func (d *pdfcpuDocument) WritePages(pages []int, w io.Writer) error {
	sub, err := pdfcpu.ExtractPages(d.ctx, pages, false)
	if err != nil {
		return fmt.Errorf("extracting pages: %w", err)
	}
	return api.WriteContext(sub, w)
}
