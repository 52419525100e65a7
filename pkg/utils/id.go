package utils

import "github.com/google/uuid"

// NewID 统一主键生成（UUID v4 字符串）
func NewID() string { return uuid.NewString() }
