package xmltext

import "unicode"

// nameStartTable covers the non-ASCII NameStartChar ranges from the XML 1.0
// Fifth Edition grammar:
//
//	NameStartChar ::= ":" | [A-Z] | "_" | [a-z]
//	                | [#xC0-#xD6] | [#xD8-#xF6] | [#xF8-#x2FF]
//	                | [#x370-#x37D] | [#x37F-#x1FFF] | [#x200C-#x200D]
//	                | [#x2070-#x218F] | [#x2C00-#x2FEF] | [#x3001-#xD7FF]
//	                | [#xF900-#xFDCF] | [#xFDF0-#xFFFD] | [#x10000-#xEFFFF]
//
// The ASCII subset is handled separately by the byte lookup tables.
var nameStartTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00C0, Hi: 0x00D6, Stride: 1},
		{Lo: 0x00D8, Hi: 0x00F6, Stride: 1},
		{Lo: 0x00F8, Hi: 0x02FF, Stride: 1},
		{Lo: 0x0370, Hi: 0x037D, Stride: 1},
		{Lo: 0x037F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
}

// nameCharTable covers the additional non-ASCII NameChar ranges beyond
// NameStartChar from the XML 1.0 Fifth Edition grammar:
//
//	NameChar ::= NameStartChar | "-" | "." | [0-9] | #xB7
//	           | [#x0300-#x036F] | [#x203F-#x2040]
var nameCharTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00B7, Hi: 0x00B7, Stride: 1},
		{Lo: 0x0300, Hi: 0x036F, Stride: 1},
		{Lo: 0x203F, Hi: 0x2040, Stride: 1},
	},
}
