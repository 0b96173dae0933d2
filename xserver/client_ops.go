package xserver

import (
	"github.com/jezek/xgb/xproto"
)

// CloseClient asks a window to close, preferring the ICCCM WM_DELETE_WINDOW
// handshake (a ClientMessageEvent carrying WM_PROTOCOLS/WM_DELETE_WINDOW,
// the same construction 1broseidon-termtile's LinuxBackend.Close uses) when
// the client advertised support for it; otherwise it falls back to
// KillClient, which forcibly terminates the client's connection.
func (c *Conn) CloseClient(w xproto.Window, acceptsDelete bool) error {
	if !acceptsDelete {
		return xproto.KillClientChecked(c.X.Conn(), uint32(w)).Check()
	}

	protocols, err := xproto.InternAtom(c.X.Conn(), false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return err
	}
	deleteAtom, err := xproto.InternAtom(c.X.Conn(), false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   protocols.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom.Atom), 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(c.X.Conn(), false, w, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}
