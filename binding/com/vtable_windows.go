//go:build windows

package com

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// IUnknownVtbl is the method table every COM object starts with.
type IUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

// IUnknown is a raw COM interface pointer.
type IUnknown struct {
	Vtbl *IUnknownVtbl
}

func (u *IUnknown) AddRef() uint32 {
	ret, _, _ := syscall.SyscallN(u.Vtbl.AddRef, uintptr(unsafe.Pointer(u)))
	return uint32(ret)
}

func (u *IUnknown) Release() uint32 {
	ret, _, _ := syscall.SyscallN(u.Vtbl.Release, uintptr(unsafe.Pointer(u)))
	return uint32(ret)
}

// QueryInterface asks for another interface on the same object. The result
// carries its own reference; wrap it with Attach.
func (u *IUnknown) QueryInterface(iid *windows.GUID) (*IUnknown, error) {
	var out *IUnknown
	hr, _, _ := syscall.SyscallN(
		u.Vtbl.QueryInterface,
		uintptr(unsafe.Pointer(u)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)),
	)
	if int32(hr) < 0 {
		return nil, fmt.Errorf("QueryInterface %s: HRESULT 0x%08X", iid.String(), uint32(hr))
	}
	return out, nil
}

// Query wraps QueryInterface on p's object into a new owning Ptr.
func Query(p *Ptr[*IUnknown], iid *windows.GUID) (*Ptr[*IUnknown], error) {
	u := p.Get()
	if u == nil {
		return nil, fmt.Errorf("QueryInterface %s: empty pointer", iid.String())
	}
	out, err := u.QueryInterface(iid)
	if err != nil {
		return nil, err
	}
	return Attach(out), nil
}

// Initialize enters a multithreaded COM apartment for the calling thread.
// The returned function leaves it.
func Initialize() (func(), error) {
	if err := windows.CoInitializeEx(0, windows.COINIT_MULTITHREADED); err != nil {
		return nil, err
	}
	return windows.CoUninitialize, nil
}
