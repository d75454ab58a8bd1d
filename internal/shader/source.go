// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package shader

// Vertex inputs.
const (
	AttrPosition = "aPosition"
	AttrNormal   = "aNormal"
)

// Uniforms.
const (
	UniProjection      = "uProjectionMatrix"
	UniModelView       = "uModelViewMatrix"
	UniMatAmbient      = "uMatAmbientColor"
	UniMatDiffuse      = "uMatDiffuseColor"
	UniMatSpecular     = "uMatSpecularColor"
	UniMatShininess    = "uMatShininess"
	UniMatTransparency = "uMatTransparency"
	UniLightPosition   = "uPointLight"
	UniLightAmbient    = "uLightAmbientColor"
	UniLightDiffuse    = "uLightDiffuseColor"
	UniLightSpecular   = "uLightSpecularColor"
)

// VertexSource is the source of the vertex stage.
// The normal is normalized before the model-view rotation
// is applied, and not after.
const VertexSource = `#version 410 core

in vec4 aPosition;
in vec3 aNormal;

uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;

out vec3 vNormal;
out vec4 vPosition;

void main() {
	gl_Position = uProjectionMatrix * uModelViewMatrix * aPosition;
	vPosition = gl_Position;
	vec3 n = normalize(aNormal);
	vNormal = mat3(uModelViewMatrix) * n;
}
`

// FragmentSource is the source of the fragment stage.
// It implements Phong shading for a single light.
// The light position is subtracted as a homogeneous vector,
// so w selects between point (w = 1) and direction-like
// (w = 0) behavior without any branching.
const FragmentSource = `#version 410 core
precision mediump float;

in vec3 vNormal;
in vec4 vPosition;

uniform vec3 uMatAmbientColor;
uniform vec3 uMatSpecularColor;
uniform vec3 uMatDiffuseColor;
uniform float uMatShininess;
uniform float uMatTransparency;

uniform vec4 uPointLight;
uniform vec3 uLightAmbientColor;
uniform vec3 uLightSpecularColor;
uniform vec3 uLightDiffuseColor;

out vec4 fragColor;

void main() {
	vec3 ambient = uLightAmbientColor * uMatAmbientColor;

	vec3 norm = normalize(vNormal);
	vec3 lightDir = normalize(uPointLight - vPosition).xyz;
	float diff = max(dot(norm, lightDir), 0.0);
	vec3 diffuse = uLightDiffuseColor * (diff * uMatDiffuseColor);

	vec3 viewDir = normalize(-vPosition).xyz;
	vec3 reflectDir = reflect(-lightDir, norm);
	float spec = pow(max(dot(viewDir, reflectDir), 0.0), uMatShininess);
	vec3 specular = uLightSpecularColor * (spec * uMatSpecularColor);

	fragColor = vec4(ambient + diffuse + specular, uMatTransparency);
}
`
