package contracts

import "github.com/julienschmidt/httprouter"

// Handler mounts a module's routes on the shared application router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
