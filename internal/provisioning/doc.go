// Package provisioning detects, loads and walks provisioning documents.
//
// It offers three stateless operations:
//   - IsProvisioningFile: best-effort sniffing by extension and content marker
//   - GetModel / Loader.Load: decode a file and resolve its effective model
//   - VisitOSGiConfigurations: hand every configuration to a consumer
//     together with its relative output path
//
// Output paths follow the convention
//
//	[<sorted run mode names joined by ".">/][<factoryPid>-]<pid>.config
//
// where the run mode prefix is omitted for the default and for special run
// modes.
package provisioning
