package calc

import "testing"

func BenchmarkAdd_Int(b *testing.B) {
	c := New()
	x, y := Int(123456789), Int(987654321)
	for i := 0; i < b.N; i++ {
		_ = c.Add(x, y)
	}
}

func BenchmarkAdd_Mixed(b *testing.B) {
	c := New()
	x, y := Int(7), Float(0.5)
	for i := 0; i < b.N; i++ {
		_ = c.Add(x, y)
	}
}

func BenchmarkDivide_Inexact(b *testing.B) {
	c := New()
	x, y := Int(7), Int(2)
	for i := 0; i < b.N; i++ {
		_, _ = c.Divide(x, y)
	}
}

func BenchmarkParseValue(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseValue("3.14159")
	}
}
