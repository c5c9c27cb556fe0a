package fasttypeconversion

import (
	"unsafe"
)

// String2Bytes 字符串快速转换成字节数组, 新变量共享底层数据指针.
// 返回的字节数组只读, 修改它的行为未定义.
func String2Bytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Bytes2String 字节数组快速转换成字符串, 新变量共享底层数据指针.
// 转换后不得再修改b.
func Bytes2String(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
