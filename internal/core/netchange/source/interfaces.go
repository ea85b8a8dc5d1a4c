package source

import (
	"net"
	"sort"
)

// interfaceInfo 接口快照
type interfaceInfo struct {
	Name  string
	Flags net.Flags
	Addrs []string
}

func (i interfaceInfo) isUp() bool {
	return i.Flags&net.FlagUp != 0 && i.Flags&net.FlagRunning != 0
}

func (i interfaceInfo) isLoopback() bool {
	return i.Flags&net.FlagLoopback != 0
}

// interfaceLister 列出当前接口，测试时替换
type interfaceLister func() ([]interfaceInfo, error)

// systemInterfaces 通过 net.Interfaces() 获取接口及地址
func systemInterfaces() ([]interfaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make([]interfaceInfo, 0, len(ifaces))
	for _, iface := range ifaces {
		info := interfaceInfo{
			Name:  iface.Name,
			Flags: iface.Flags,
		}
		addrs, err := iface.Addrs()
		if err == nil {
			for _, addr := range addrs {
				info.Addrs = append(info.Addrs, addr.String())
			}
			sort.Strings(info.Addrs)
		}
		out = append(out, info)
	}
	return out, nil
}
