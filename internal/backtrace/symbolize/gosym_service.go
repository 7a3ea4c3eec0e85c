package symbolize

import (
	"debug/elf"
	"debug/gosym"
	"fmt"
)

// TableService resolves addresses against the symbol and line tables of
// a Go ELF binary on disk, rather than the running process. It backs
// offline tooling that symbolicates address dumps from another process.
//
// The pclntab carries no inline tree, so expansion requests still yield
// a single physical frame per address.
type TableService struct {
	tab *gosym.Table
}

// OpenTable reads the symbol and line tables out of the ELF binary at
// path and returns a service resolving against them.
func OpenTable(path string) (*TableService, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	text := f.Section(".text")
	if text == nil {
		return nil, fmt.Errorf("%s: no .text section", path)
	}
	pclntab := f.Section(".gopclntab")
	if pclntab == nil {
		return nil, fmt.Errorf("%s: no .gopclntab section, not a Go binary?", path)
	}
	lineData, err := pclntab.Data()
	if err != nil {
		return nil, fmt.Errorf("read .gopclntab of %s: %w", path, err)
	}

	// .gosymtab is empty in modern binaries; gosym tolerates that.
	var symData []byte
	if symtab := f.Section(".gosymtab"); symtab != nil {
		symData, err = symtab.Data()
		if err != nil {
			return nil, fmt.Errorf("read .gosymtab of %s: %w", path, err)
		}
	}

	tab, err := gosym.NewTable(symData, gosym.NewLineTable(lineData, text.Addr))
	if err != nil {
		return nil, fmt.Errorf("parse symbol table of %s: %w", path, err)
	}
	return &TableService{tab: tab}, nil
}

func (s *TableService) FrameInfo(pc uintptr, expandInline bool) []Frame {
	file, line, fn := s.tab.PCToLine(uint64(pc))
	if fn == nil {
		return nil
	}
	name := cleanName(fn.Name)
	return []Frame{{
		Func:        name,
		File:        file,
		Line:        line,
		Entry:       uintptr(fn.Entry),
		FromRuntime: isRuntimeName(name),
		PC:          pc,
	}}
}
