package service

import (
	"Ripple/internal/model"
)

// requireOwner 校验资源归属，非属主一律拒绝
func requireOwner(res model.Owned, userID uint64) error {
	if res.OwnerID() != userID {
		return ErrNotOwner
	}
	return nil
}
