package lexer

// Fold level encoding shared by folders and hosts.
const (
	FoldLevelBase       = 0x400
	FoldLevelWhiteFlag  = 0x1000
	FoldLevelHeaderFlag = 0x2000
	FoldLevelNumberMask = 0x0FFF
)

// FoldDepth strips the flags from a stored fold level.
func FoldDepth(level int) int {
	return level & FoldLevelNumberMask
}

// IsFoldHeader reports whether level marks a fold point.
func IsFoldHeader(level int) bool {
	return level&FoldLevelHeaderFlag != 0
}

// IsFoldWhite reports whether level marks a blank line.
func IsFoldWhite(level int) bool {
	return level&FoldLevelWhiteFlag != 0
}
