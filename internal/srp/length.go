package srp

// lengthByNibble maps bits 31..28 of a code word to its instruction length in bytes.
// Zero marks an encoding with no known length.
var lengthByNibble = [16]int{
	0x0: 1,
	0x1: 3, 0x2: 3, 0x3: 3, 0xC: 3,
	0x4: 6, 0x5: 6,
	0x6: 2, 0xE: 2, 0xF: 2,
	0xB: 4,
	0xD: 5,
}

// InstructionLength classifies the instruction starting with word.
func InstructionLength(word uint32) (int, error) {
	length := lengthByNibble[word>>28]
	if length == 0 {
		return 0, &ErrUnrecognizedLength{Word: word}
	}
	return length, nil
}
