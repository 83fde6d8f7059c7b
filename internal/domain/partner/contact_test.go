package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	t.Run("valid customer", func(t *testing.T) {
		c, err := NewContact(uuid.New(), ContactInput{Kind: ContactCustomer, Name: " Ada ", Email: "Ada@Example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Ada", c.Name)
		assert.Equal(t, "ada@example.com", c.Email)
		assert.True(t, c.CanReceive("invoice"))
		assert.False(t, c.CanReceive("bill"))
	})

	t.Run("vendor receives bills", func(t *testing.T) {
		c, err := NewContact(uuid.New(), ContactInput{Kind: ContactVendor, Name: "Paper Co"})
		require.NoError(t, err)
		assert.True(t, c.CanReceive("bill"))
		assert.False(t, c.CanReceive("quote"))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewContact(uuid.New(), ContactInput{Kind: "friend", Name: "X"})
		assert.Error(t, err)
		_, err = NewContact(uuid.New(), ContactInput{Kind: ContactVendor, Name: ""})
		assert.Error(t, err)
		_, err = NewContact(uuid.New(), ContactInput{Kind: ContactVendor, Name: "X", Email: "not-an-email"})
		assert.Error(t, err)
		_, err = NewContact(uuid.New(), ContactInput{Kind: ContactVendor, Name: "X", Email: "Bob <bob@example.com>"})
		assert.Error(t, err)
	})
}

func TestContact_Update(t *testing.T) {
	c, _ := NewContact(uuid.New(), ContactInput{Kind: ContactCustomer, Name: "Ada"})
	require.NoError(t, c.Update(ContactInput{Kind: ContactCustomer, Name: "Ada L", Phone: " 555 "}))
	assert.Equal(t, "555", c.Phone)
	assert.Equal(t, 2, c.Version)
	assert.Error(t, c.Update(ContactInput{Kind: ContactCustomer}))
	assert.Equal(t, "Ada L", c.Name)
}
