package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window
)

// PointerState is the desktop-wide pointer as seen from the X11 root window.
type PointerState struct {
	X, Y        int
	PrimaryDown bool
}

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(XConn)
	XRoot = setup.DefaultScreen(XConn).Root
	return nil
}

// CloseX11 drops the shared connection, if any.
func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}

// GetGlobalPointer reads the root pointer position and button 1 state. It is
// used in wallpaper mode, where the window sits below others and gets no input events.
func GetGlobalPointer() (PointerState, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return PointerState{}, err
		}
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return PointerState{}, err
	}

	return PointerState{
		X:           int(reply.RootX),
		Y:           int(reply.RootY),
		PrimaryDown: reply.Mask&xproto.KeyButMaskButton1 != 0,
	}, nil
}
