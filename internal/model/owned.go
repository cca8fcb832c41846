package model

// Owned 归属于某个用户的资源，用于统一的所有权校验。
// User 本身也实现该接口（用户归属于自己）。
type Owned interface {
	OwnerID() uint64
}
