// Package reader parses provisioning documents into a model.Model.
//
// A document is a sequence of sections. Each section starts with a header
// line in column 0 and ends at the next header:
//
//	[feature name=my-app version=1.0.0]
//
//	[variables]
//	  app.version=1.2.3
//
//	[settings runModes=prod]
//	  sling.fileinstall.dir=/opt/install
//
//	[artifacts startLevel=20 runModes=prod,web]
//	  mvn:com.example/app-core/${app.version}
//	  com.example/app-web/1.0.0/war [optional=true]
//
//	[configurations runModes=prod]
//	  org.example.Service
//	    port=I"8080"
//	  org.example.Factory-main [mode=merge]
//	    name="main"
//
//	[:repoinit]
//	  create service user example-user
//
// Blank lines and lines starting with "#" are ignored outside of additional
// ("[:name]") sections, whose bodies are kept verbatim. Configuration
// properties are the lines indented deeper than their pid line and are decoded
// with package configformat.
package reader
