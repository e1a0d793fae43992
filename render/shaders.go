// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// Shader sources. Attribute and uniform locations are fixed, see
// gpu.PositionAttrib and friends for the vertex layout.
const (
	// RenderVertexShader transforms positions and passes the flat vertex
	// color and the eye-space normal on.
	RenderVertexShader = `#version 450 core

layout (location = 0) uniform mat4 uModelMatrix;
layout (location = 1) uniform mat4 uViewMatrix;
layout (location = 2) uniform mat4 uProjectionMatrix;
layout (location = 3) uniform mat4 uNormalMatrix;

layout (location = 0) in vec3 aVertexPosition;
layout (location = 1) in vec3 aVertexColor;
layout (location = 2) in vec3 aVertexNormal;

flat   out vec4 fragColor;
smooth out vec3 fragNormal;

void main()
{
	gl_Position = uProjectionMatrix * uViewMatrix * uModelMatrix * vec4(aVertexPosition, 1.0);
	fragColor   = vec4(aVertexColor, 1.0);
	fragNormal  = (uNormalMatrix * vec4(aVertexNormal, 0.0)).xyz;
}
`

	// RenderFragmentShader applies a single directional diffuse light when
	// uLightMode is 1.
	RenderFragmentShader = `#version 450 core

layout (location = 4) uniform int  uLightMode;
layout (location = 5) uniform vec3 uLightDirection;

flat   in vec4 fragColor;
smooth in vec3 fragNormal;

out vec4 FragColor;

void main()
{
	vec4 color = fragColor;
	if (uLightMode == 1) {
		float diffuse = clamp(dot(normalize(fragNormal), -uLightDirection), 0.0, 1.0);
		color = vec4(diffuse * color.rgb, color.a);
	}
	FragColor = color;
}
`

	// PickingVertexShader passes the integer name of each vertex through
	// without interpolation.
	PickingVertexShader = `#version 450 core

layout (location = 0) uniform mat4 uModelMatrix;
layout (location = 1) uniform mat4 uViewMatrix;
layout (location = 2) uniform mat4 uProjectionMatrix;

layout (location = 0) in vec3  aVertexPosition;
layout (location = 3) in ivec2 aName;

flat out ivec2 fragName;

void main()
{
	gl_Position = uProjectionMatrix * uViewMatrix * uModelMatrix * vec4(aVertexPosition, 1.0);
	fragName    = aName;
}
`

	// PickingFragmentShader writes the name into an integer color buffer.
	PickingFragmentShader = `#version 450 core

flat in ivec2 fragName;

out ivec4 FragColor;

void main()
{
	FragColor = ivec4(fragName.r, fragName.g, 0, 0);
}
`
)
