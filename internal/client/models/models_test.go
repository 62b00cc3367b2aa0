package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountView_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want AccountView
	}{
		{"numeric balance", `["Alice","AB12",2500]`, AccountView{"Alice", "AB12", 2500}},
		{"string balance", `["Alice","AB12","2500"]`, AccountView{"Alice", "AB12", 2500}},
		{"null rfid", `["Bob",null,0]`, AccountView{"Bob", "", 0}},
		{"numeric rfid", `["Bob",16027465,-10]`, AccountView{"Bob", "16027465", -10}},
		{"extra elements ignored", `["Eve","X",1.0,"extra"]`, AccountView{"Eve", "X", 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AccountView
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountView_UnmarshalErrors(t *testing.T) {
	for _, in := range []string{`{}`, `["Alice","AB12"]`, `["Alice","AB12","lots"]`, `["Alice","AB12",1.5]`, `[true,"x",1]`} {
		var av AccountView
		err := json.Unmarshal([]byte(in), &av)
		require.ErrorIs(t, err, ErrMalformedTuple, in)
	}
}

func TestTransaction_Unmarshal(t *testing.T) {
	var txs []Transaction
	in := `[[-150,"Snack",1700000000,""],[500,"Topup",1700000000,"123"],[200,"Guthaben aufgeladen",1690000000],[-80,"Mate",1690000001,null]]`
	require.NoError(t, json.Unmarshal([]byte(in), &txs))
	require.Len(t, txs, 4)

	assert.Equal(t, Transaction{-150, "Snack", 1700000000, ""}, txs[0])
	assert.False(t, txs[0].HasProduct())
	assert.Equal(t, Transaction{500, "Topup", 1700000000, "123"}, txs[1])
	assert.True(t, txs[1].HasProduct())
	assert.Equal(t, "", txs[2].ProductCode)
	assert.Equal(t, "", txs[3].ProductCode)
	assert.Equal(t, int64(1700000000), txs[0].Time().Unix())
}

func TestTransaction_UnmarshalShortRow(t *testing.T) {
	var tx Transaction
	require.ErrorIs(t, json.Unmarshal([]byte(`[1,"x"]`), &tx), ErrMalformedTuple)
}

func TestCredentials_CloneAndWipe(t *testing.T) {
	c := Credentials{Name: "alice", RFID: "AB12", Password: []byte("secret")}
	cp := c.Clone()
	pw := c.Password

	c.Wipe()

	assert.True(t, c.Empty())
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0}, pw)
	assert.Equal(t, "secret", string(cp.Password))
	assert.Equal(t, "alice", cp.Name)
}

func TestPanelAndModeStrings(t *testing.T) {
	assert.Equal(t, "start", PanelStart.String())
	assert.Equal(t, "account", PanelAccount.String())
	assert.Equal(t, "dashboard", PanelDashboard.String())
	assert.Equal(t, "unknown", Panel(42).String())
	assert.Equal(t, "create", AccountModeCreate.String())
	assert.Equal(t, "modify", AccountModeModify.String())
}
