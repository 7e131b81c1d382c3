// Package str implements an immutable string value backed by an owned rune buffer.
//
// A *String never changes after construction. Operations that would produce a value equal
// to an existing instance return that instance instead of allocating, so callers may compare
// results by pointer as well as by content.
package str

import (
	"fmt"
	"sync/atomic"
)

// String 只读字符串
// 实现了lru.Value接口
type String struct {
	chars []rune
	hash  atomic.Int32 // 0 表示尚未计算
}

// New 由Go字符串构造，拷贝其内容
func New(s string) *String {
	return wrap([]rune(s))
}

// FromRunes 由rune切片构造，之后对 r 的修改不会影响返回值
func FromRunes(r []rune) *String {
	return wrap(cloneRunes(r))
}

// wrap takes ownership of chars; callers must not retain it.
func wrap(chars []rune) *String {
	return &String{chars: chars}
}

func cloneRunes(r []rune) []rune {
	c := make([]rune, len(r))
	copy(c, r)
	return c
}

// Len 获取字符数量，nil 视为空串
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return len(s.chars)
}

// IsEmpty 是否为空串
func (s *String) IsEmpty() bool {
	return s.Len() == 0
}

// Runes 返回数据的副本
func (s *String) Runes() []rune {
	return cloneRunes(s.chars)
}

// CharAt 返回下标 i 处的字符
func (s *String) CharAt(i int) (rune, error) {
	if i < 0 || i >= len(s.chars) {
		return 0, indexError(i)
	}
	return s.chars[i], nil
}

// Concat returns s followed by other. If other is empty, s itself is returned.
func (s *String) Concat(other *String) *String {
	if other.IsEmpty() {
		return s
	}
	chars := make([]rune, len(s.chars)+len(other.chars))
	n := copy(chars, s.chars)
	copy(chars[n:], other.chars)
	return wrap(chars)
}

// Plus concatenates the textual form of v. A *String is appended as is, anything else is
// rendered with fmt.Sprint first.
func (s *String) Plus(v any) *String {
	if other, ok := v.(*String); ok && other != nil {
		return s.Concat(other)
	}
	return s.Concat(New(fmt.Sprint(v)))
}

// SubstringFrom is Substring(start, s.Len()).
func (s *String) SubstringFrom(start int) (*String, error) {
	return s.Substring(start, len(s.chars))
}

// Substring returns the characters in [start, end). When the range covers the whole
// string, s itself is returned.
func (s *String) Substring(start, end int) (*String, error) {
	if start < 0 {
		return nil, indexError(start)
	}
	if end > len(s.chars) {
		return nil, indexError(end)
	}
	n := end - start
	if n < 0 {
		return nil, indexError(n)
	}
	if n == len(s.chars) {
		return s, nil
	}
	return wrap(cloneRunes(s.chars[start:end])), nil
}

// Equals reports whether other holds the same characters as s.
func (s *String) Equals(other *String) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || len(s.chars) != len(other.chars) {
		return false
	}
	for i, c := range s.chars {
		if other.chars[i] != c {
			return false
		}
	}
	return true
}

// HashCode returns the content hash, computed on first use.
//
// A non-empty string whose hash is exactly 0 is rehashed on every call; the result is
// still correct.
func (s *String) HashCode() int32 {
	h := s.hash.Load()
	if h != 0 || len(s.chars) == 0 {
		return h
	}
	h = 1
	for _, c := range s.chars {
		h = 31*h + int32(c)
	}
	s.hash.Store(h)
	return h
}

// String 返回数据的字符串表示
func (s *String) String() string {
	return string(s.chars)
}
