package pe

func Fuzz(data []byte) int {
	f, err := NewBytes(data, &Options{Fast: false, SectionEntropy: true, EagerMethodBodies: true})
	if err != nil {
		return 0
	}
	err = f.Parse()
	if err != nil {
		return 0
	}
	if f.FileInfo.HasCLR {
		count := f.CLR.RowCount(MethodDef)
		for rid := uint32(1); rid <= count; rid++ {
			f.CLR.MethodBody(rid)
		}
	}
	return 1
}
