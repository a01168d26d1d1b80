package utils

import "strconv"

// StringToInt 宽松解析查询参数里的整数
// 解析不了就当 0，坏输入不值得报错（page_size、limit 都有下游兜底）
func StringToInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
