package models

import "github.com/dmitrijs2005/prepaidmate/internal/common"

// Credentials is the session object. Name and Password authenticate every
// follow-up call; the backend has no token-based session.
type Credentials struct {
	Name     string
	RFID     string
	Password []byte
}

// Clone returns a copy that does not share the password buffer.
func (c Credentials) Clone() Credentials {
	return Credentials{Name: c.Name, RFID: c.RFID, Password: common.CloneBytes(c.Password)}
}

// Wipe zeroes the password and forgets all fields.
func (c *Credentials) Wipe() {
	common.WipeByteArray(c.Password)
	c.Name, c.RFID, c.Password = "", "", nil
}

// Empty reports whether no user is attached.
func (c Credentials) Empty() bool {
	return c.Name == "" && len(c.Password) == 0
}
