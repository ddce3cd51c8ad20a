package migration

import (
	"github.com/TykTechnologies/servicemigration/internal/errors"
	"github.com/TykTechnologies/servicemigration/servicedef"
)

var (
	ErrNoInput  = errors.NewClassified(errors.ClassConfiguration, "can't find migration input data")
	ErrNoOutput = errors.NewClassified(errors.ClassConfiguration, "can't find migration output location")

	ErrReparentTenant = errors.NewClassified(errors.ClassStructural, "can't reparent tenant")
	ErrReparentToNew  = errors.NewClassified(errors.ClassStructural, "can't reparent to a new service")
	ErrDeployToNew    = errors.NewClassified(errors.ClassStructural, "can't deploy below a new service")
	ErrDefinition     = errors.NewClassified(errors.ClassStructural, "service definition must be a JSON object")

	ErrCycle           = servicedef.ErrCycle
	ErrInvalidDocument = servicedef.ErrInvalidDocument
	ErrNilService      = servicedef.ErrNilService
)
