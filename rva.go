package wrc

// An RVA resolver maps a VirtualAddress to a file physical
// address. When the physical file is mapped into memory, sections in
// the file are mapped at different memory addresses. Resource data
// descriptors point at those virtual addresses so the resource
// section needs to be located in the file before it can be read.
type Run struct {
	VirtualAddress  uint32
	VirtualEnd      uint32
	PhysicalAddress uint32
}

type RVAResolver struct {
	// For now very simple O(n) search.
	Runs      []*Run
	ImageBase uint64
	Is64Bit   bool
}

func (self *RVAResolver) GetRun(rva uint32) (*Run, bool) {
	for _, run := range self.Runs {
		if rva >= run.VirtualAddress && rva < run.VirtualEnd {
			return run, true
		}
	}
	return nil, false
}

func (self *RVAResolver) GetFileAddress(rva uint32) (uint32, bool) {
	run, pres := self.GetRun(rva)
	if !pres {
		return 0, false
	}
	return rva - run.VirtualAddress + run.PhysicalAddress, true
}

func NewRVAResolver(header *IMAGE_NT_HEADERS) *RVAResolver {
	result := &RVAResolver{
		ImageBase: header.ImageBase,
		Is64Bit:   header.Is64Bit(),
	}

	for _, section := range header.Sections {
		if section.SizeOfRawData == 0 {
			continue
		}

		run := &Run{
			VirtualAddress:  section.VirtualAddress,
			VirtualEnd:      section.VirtualAddress + section.SizeOfRawData,
			PhysicalAddress: section.PointerToRawData,
		}

		result.Runs = append(result.Runs, run)
	}

	return result
}
