package orders

import (
	"testing"

	"agrimart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusPtr(s models.OrderStatus) *models.OrderStatus          { return &s }
func transportPtr(s models.TransportStatus) *models.TransportStatus { return &s }
func strPtr(s string) *string                                     { return &s }

func sampleOrder() *models.Order {
	return &models.Order{
		OrderID: "o1",
		BuyerID: "buyer1",
		Items: []models.OrderItem{
			{ProductID: "p1", AgentID: "agent1", Name: "Maize", Price: 100, Quantity: 2},
			{ProductID: "p2", AgentID: "agent2", Name: "Beans", Price: 50, Quantity: 1},
		},
		Status:          models.OrderPending,
		TransportStatus: models.TransportPending,
		TransporterID:   "trans1",
	}
}

func TestChangeRequestValidate(t *testing.T) {
	assert.Error(t, ChangeRequest{}.Validate(), "empty request")

	bad := models.OrderStatus("shipped")
	assert.Error(t, ChangeRequest{Status: &bad}.Validate())

	badT := models.TransportStatus("lost")
	assert.Error(t, ChangeRequest{TransportStatus: &badT}.Validate())

	ok := ChangeRequest{
		Status:          statusPtr(models.OrderPaid),
		TransportStatus: transportPtr(models.TransportPicked),
	}
	assert.NoError(t, ok.Validate())
}

func TestAuthorizeStranger(t *testing.T) {
	o := sampleOrder()
	err := Authorize(o, Caller{UserID: "nobody"}, ChangeRequest{Status: statusPtr(models.OrderPaid)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeBuyer(t *testing.T) {
	o := sampleOrder()
	buyer := Caller{UserID: "buyer1"}

	assert.NoError(t, Authorize(o, buyer, ChangeRequest{Status: statusPtr(models.OrderPaid)}))

	err := Authorize(o, buyer, ChangeRequest{Status: statusPtr(models.OrderDelivered)})
	assert.ErrorIs(t, err, ErrForbidden)

	err = Authorize(o, buyer, ChangeRequest{TransportStatus: transportPtr(models.TransportPicked)})
	assert.ErrorIs(t, err, ErrForbidden)

	err = Authorize(o, buyer, ChangeRequest{TransporterID: strPtr("trans2")})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeAgent(t *testing.T) {
	o := sampleOrder()
	agent := Caller{UserID: "agent2"}

	assert.NoError(t, Authorize(o, agent, ChangeRequest{Status: statusPtr(models.OrderDelivered)}))
	assert.NoError(t, Authorize(o, agent, ChangeRequest{TransporterID: strPtr("trans2")}))

	err := Authorize(o, agent, ChangeRequest{TransportStatus: transportPtr(models.TransportPicked)})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeTransporter(t *testing.T) {
	o := sampleOrder()
	trans := Caller{UserID: "trans1"}

	assert.NoError(t, Authorize(o, trans, ChangeRequest{TransportStatus: transportPtr(models.TransportPicked)}))

	err := Authorize(o, trans, ChangeRequest{Status: statusPtr(models.OrderPaid)})
	assert.ErrorIs(t, err, ErrForbidden)

	err = Authorize(o, trans, ChangeRequest{TransporterID: strPtr("trans2")})
	assert.ErrorIs(t, err, ErrForbidden)

	// An unassigned transporter has no relationship at all.
	o.TransporterID = ""
	err = Authorize(o, trans, ChangeRequest{TransportStatus: transportPtr(models.TransportPicked)})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeAdminBypassesMatrix(t *testing.T) {
	o := sampleOrder()
	admin := Caller{UserID: "root", IsAdmin: true}
	assert.NoError(t, Authorize(o, admin, ChangeRequest{
		Status:          statusPtr(models.OrderDelivered),
		TransportStatus: transportPtr(models.TransportDelivered),
		TransporterID:   strPtr("trans9"),
	}))
}

func TestCheckTransitionForwardOnly(t *testing.T) {
	o := sampleOrder()
	o.Status = models.OrderPaid
	o.TransportStatus = models.TransportOnTransit
	caller := Caller{UserID: "agent1"}

	assert.Error(t, CheckTransition(o, caller, ChangeRequest{Status: statusPtr(models.OrderPending)}))
	assert.Error(t, CheckTransition(o, caller, ChangeRequest{TransportStatus: transportPtr(models.TransportPicked)}))

	assert.NoError(t, CheckTransition(o, caller, ChangeRequest{Status: statusPtr(models.OrderDelivered)}))
	assert.NoError(t, CheckTransition(o, caller, ChangeRequest{Status: statusPtr(models.OrderPaid)}), "same state is not a backward move")

	admin := Caller{UserID: "root", IsAdmin: true}
	assert.NoError(t, CheckTransition(o, admin, ChangeRequest{Status: statusPtr(models.OrderPending)}))
}

func TestApplyReportsChangedAxes(t *testing.T) {
	o := sampleOrder()

	statusChanged, transportChanged := Apply(o, ChangeRequest{Status: statusPtr(models.OrderPaid)})
	assert.True(t, statusChanged)
	assert.False(t, transportChanged)
	assert.Equal(t, models.OrderPaid, o.Status)
	assert.Equal(t, models.TransportPending, o.TransportStatus)

	// Writing the current value is a no-op on that axis.
	statusChanged, transportChanged = Apply(o, ChangeRequest{
		Status:          statusPtr(models.OrderPaid),
		TransportStatus: transportPtr(models.TransportPicked),
		TransporterID:   strPtr("trans2"),
	})
	assert.False(t, statusChanged)
	assert.True(t, transportChanged)
	assert.Equal(t, "trans2", o.TransporterID)
}

func TestOrderAgentHelpers(t *testing.T) {
	o := sampleOrder()
	o.Items = append(o.Items, models.OrderItem{ProductID: "p3", AgentID: "agent1"})

	assert.Equal(t, []string{"agent1", "agent2"}, o.AgentIDs(), "deduplicated, in item order")
	assert.True(t, o.HasAgent("agent2"))
	assert.False(t, o.HasAgent("buyer1"))
}
