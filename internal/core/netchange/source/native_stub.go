//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package source

import pkgif "github.com/dep2p/go-netchange/pkg/interfaces"

// newNativeSource 当前平台没有原生实现，返回 nil 以回退到轮询
func newNativeSource(_ *Config) pkgif.ChangeSource {
	return nil
}
