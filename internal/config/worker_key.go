package config

type WorkerKeyStruct struct {
	PersistContactQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistContactQueue: "persist_contact_queue",
}
