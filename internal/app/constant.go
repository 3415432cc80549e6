package app

// ServiceName identifies this process to external systems.
const ServiceName = "exam-prep-assistant"
