package domain

// IntentUpdate is a partial update of a PaymentIntent. Each variant names
// exactly the fields it changes.
type IntentUpdate interface {
	Apply(*PaymentIntent)
	intentUpdate()
}

// IntentStatusUpdate changes only the status.
type IntentStatusUpdate struct {
	Status IntentStatus
}

func (u IntentStatusUpdate) Apply(i *PaymentIntent) { i.Status = u.Status }
func (IntentStatusUpdate) intentUpdate()             {}

// IntentMerchantStatusUpdate changes the status together with the resolved
// address references. Nil addresses leave the stored value.
type IntentMerchantStatusUpdate struct {
	Status            IntentStatus
	ShippingAddressID *string
	BillingAddressID  *string
}

func (u IntentMerchantStatusUpdate) Apply(i *PaymentIntent) {
	i.Status = u.Status
	if u.ShippingAddressID != nil {
		i.ShippingAddressID = u.ShippingAddressID
	}
	if u.BillingAddressID != nil {
		i.BillingAddressID = u.BillingAddressID
	}
}
func (IntentMerchantStatusUpdate) intentUpdate() {}

// IntentCaptureUpdate records a completed capture.
type IntentCaptureUpdate struct {
	Status         IntentStatus
	AmountCaptured *int64
}

func (u IntentCaptureUpdate) Apply(i *PaymentIntent) {
	i.Status = u.Status
	if u.AmountCaptured != nil {
		i.AmountCaptured = u.AmountCaptured
	}
}
func (IntentCaptureUpdate) intentUpdate() {}

// AttemptUpdate is a partial update of a PaymentAttempt.
type AttemptUpdate interface {
	Apply(*PaymentAttempt)
	attemptUpdate()
}

// FailureDetail carries the connector-supplied error, set only on failed outcomes.
type FailureDetail struct {
	ErrorCode    *string
	ErrorMessage *string
}

func (f FailureDetail) apply(a *PaymentAttempt) {
	if f.ErrorCode != nil {
		a.ErrorCode = f.ErrorCode
	}
	if f.ErrorMessage != nil {
		a.ErrorMessage = f.ErrorMessage
	}
}

// AttemptConfirmUpdate is written by the authorize flow.
type AttemptConfirmUpdate struct {
	Status                 AttemptStatus
	PaymentMethod          *PaymentMethodType
	AuthenticationType     *AuthenticationType
	Connector              *string
	ConnectorTransactionID *string
	FailureDetail
}

func (u AttemptConfirmUpdate) Apply(a *PaymentAttempt) {
	a.Status = u.Status
	if u.PaymentMethod != nil {
		a.PaymentMethod = u.PaymentMethod
	}
	if u.AuthenticationType != nil {
		a.AuthenticationType = u.AuthenticationType
	}
	if u.Connector != nil {
		a.Connector = u.Connector
	}
	if u.ConnectorTransactionID != nil {
		a.ConnectorTransactionID = u.ConnectorTransactionID
	}
	u.FailureDetail.apply(a)
}
func (AttemptConfirmUpdate) attemptUpdate() {}

// AttemptVoidUpdate is written by the void flow.
type AttemptVoidUpdate struct {
	Status             AttemptStatus
	CancellationReason *string
	FailureDetail
}

func (u AttemptVoidUpdate) Apply(a *PaymentAttempt) {
	a.Status = u.Status
	if u.CancellationReason != nil {
		a.CancellationReason = u.CancellationReason
	}
	u.FailureDetail.apply(a)
}
func (AttemptVoidUpdate) attemptUpdate() {}

// AttemptCaptureUpdate is written by the capture flow.
type AttemptCaptureUpdate struct {
	Status          AttemptStatus
	AmountToCapture *int64
	FailureDetail
}

func (u AttemptCaptureUpdate) Apply(a *PaymentAttempt) {
	a.Status = u.Status
	if u.AmountToCapture != nil {
		a.AmountToCapture = u.AmountToCapture
	}
	u.FailureDetail.apply(a)
}
func (AttemptCaptureUpdate) attemptUpdate() {}

// AttemptSyncUpdate is written by the psync flow.
type AttemptSyncUpdate struct {
	Status                 AttemptStatus
	ConnectorTransactionID *string
	FailureDetail
}

func (u AttemptSyncUpdate) Apply(a *PaymentAttempt) {
	a.Status = u.Status
	if u.ConnectorTransactionID != nil {
		a.ConnectorTransactionID = u.ConnectorTransactionID
	}
	u.FailureDetail.apply(a)
}
func (AttemptSyncUpdate) attemptUpdate() {}

// AddressUpdate replaces the supplied address lines. Nil leaves the stored value.
type AddressUpdate struct {
	Line1     *string
	Line2     *string
	City      *string
	State     *string
	Zip       *string
	Country   *string
	FirstName *string
	LastName  *string
}

func (u AddressUpdate) Apply(a *Address) {
	set := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	set(&a.Line1, u.Line1)
	set(&a.Line2, u.Line2)
	set(&a.City, u.City)
	set(&a.State, u.State)
	set(&a.Zip, u.Zip)
	set(&a.Country, u.Country)
	set(&a.FirstName, u.FirstName)
	set(&a.LastName, u.LastName)
}
