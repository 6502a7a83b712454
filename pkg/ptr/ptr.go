package ptr

// Ptr возвращает указатель на переданное значение
// Удобно для опциональных полей в моделях и фильтрах
func Ptr[T any](v T) *T {
	return &v
}
