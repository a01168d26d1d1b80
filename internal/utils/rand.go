package utils

import (
	"math/rand"
)

const idLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	idxBits = 6
	idxMask = 1<<idxBits - 1
	idxMax  = 63 / idxBits
)

// RandID 生成指定长度的随机短 ID，用作对外暴露的实体标识
func RandID(n int) string {
	b := make([]byte, n)
	for i, cache, remain := n-1, rand.Int63(), idxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int63(), idxMax
		}
		if idx := int(cache & idxMask); idx < len(idLetters) {
			b[i] = idLetters[idx]
			i--
		}
		cache >>= idxBits
		remain--
	}
	return string(b)
}
